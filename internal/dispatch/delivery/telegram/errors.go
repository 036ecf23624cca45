package telegram

// msgProcessingFailed is sent when a turn fails after the webhook was acknowledged.
const msgProcessingFailed = "Sorry, something went wrong while processing your message."
