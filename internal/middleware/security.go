package middleware

import (
	"crypto/subtle"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// validateSecret compares the Telegram secret token header in constant time.
func (m Middleware) validateSecret(token string) error {
	if m.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) != 1 {
		return fmt.Errorf("invalid secret token")
	}
	return nil
}

// validateIPAddress checks the client IP against the allowlist. The IP comes
// from gin's ClientIP, so forwarding headers only count from trusted proxies.
func (m Middleware) validateIPAddress(ip string) error {
	if len(m.allowedIPs) == 0 {
		return nil // No IP restriction
	}

	parsed := net.ParseIP(ip)
	for _, allowedIP := range m.allowedIPs {
		if ip == allowedIP {
			return nil
		}

		// Check CIDR range
		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if parsed != nil && ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

// rateLimiter keeps one token bucket per source, evicting idle sources.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique sources
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
