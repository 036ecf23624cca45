package luis

import "time"

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	// SubscriptionKeyHeader carries the LUIS endpoint key.
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	endpointFormat = "https://%s.api.cognitive.microsoft.com"
	predictPath    = "/luis/v2.0/apps/%s"
)
