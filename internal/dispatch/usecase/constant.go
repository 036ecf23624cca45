package usecase

// Log prefixes
const (
	logPrefixHandleMessage      = "internal.dispatch.usecase.HandleMessage"
	logPrefixHandleMembersAdded = "internal.dispatch.usecase.HandleMembersAdded"
	logPrefixStructured         = "internal.dispatch.usecase.handleStructured"
	logPrefixQnA                = "internal.dispatch.usecase.handleQnA"
)

// Reply templates
const (
	msgUnrecognizedIntent = "Dispatch unrecognized intent: %s."
	msgTopIntent          = "%s top intent %s."
	msgIntentsDetected    = "%s intents detected: %s."
	msgEntitiesFound      = "%s entities were found in the message: %s."
	msgNoAnswer           = "Sorry, could not find an answer in the %s Q and A system."
	msgWelcome            = "Welcome to Dispatch bot %s. Type a greeting or a question about the weather to get started."

	listSeparator = "\n\n"
)
