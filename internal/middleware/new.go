package middleware

import (
	"dispatch-bot/config"
	"dispatch-bot/pkg/log"
)

type Middleware struct {
	l          log.Logger
	secret     string
	allowedIPs []string
	limiter    *rateLimiter
}

// New creates the HTTP middleware set. A non-positive rate limit disables limiting.
func New(l log.Logger, cfg config.WebhookConfig) Middleware {
	m := Middleware{
		l:          l,
		secret:     cfg.Secret,
		allowedIPs: cfg.AllowedIPs,
	}
	if cfg.RateLimitPerMin > 0 {
		m.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return m
}
