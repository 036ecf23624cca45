package qnamaker

import "time"

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultTop is the number of answers requested when Top is unset.
	DefaultTop = 1

	// NoMatchID is the id QnA Maker uses for its "No good match found in KB." answer.
	NoMatchID = -1

	authorizationHeader = "Authorization"
	endpointKeyPrefix   = "EndpointKey "
	generateAnswerPath  = "/knowledgebases/%s/generateAnswer"
)
