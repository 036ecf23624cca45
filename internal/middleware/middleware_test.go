package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"dispatch-bot/config"
	pkgTelegram "dispatch-bot/pkg/telegram"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

func newGuardedEngine(cfg config.WebhookConfig, gotBody *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := New(&mockLogger{}, cfg)

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		panic(err)
	}
	engine.POST("/webhook/telegram", m.TelegramWebhookGuard(), func(c *gin.Context) {
		if gotBody != nil {
			b, _ := io.ReadAll(c.Request.Body)
			*gotBody = string(b)
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func post(engine *gin.Engine, body, secret, remoteAddr string) int {
	return postWithHeaders(engine, body, secret, remoteAddr, nil)
}

func postWithHeaders(engine *gin.Engine, body, secret, remoteAddr string, headers map[string]string) int {
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if secret != "" {
		req.Header.Set(pkgTelegram.SecretTokenHeader, secret)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestTelegramWebhookGuard(t *testing.T) {
	update := `{"update_id":1,"message":{"message_id":1,"chat":{"id":7,"type":"private"},"text":"hi"}}`

	t.Run("Open Guard", func(t *testing.T) {
		var got string
		engine := newGuardedEngine(config.WebhookConfig{}, &got)

		if code := post(engine, update, "", ""); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if got != update {
			t.Errorf("body was not restored for the handler: %q", got)
		}
	})

	t.Run("Secret Mismatch", func(t *testing.T) {
		engine := newGuardedEngine(config.WebhookConfig{Secret: "s3cret"}, nil)

		if code := post(engine, update, "wrong", ""); code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
		if code := post(engine, update, "", ""); code != http.StatusUnauthorized {
			t.Errorf("expected 401 without header, got %d", code)
		}
		if code := post(engine, update, "s3cret", ""); code != http.StatusOK {
			t.Errorf("expected 200 with secret, got %d", code)
		}
	})

	t.Run("IP Allowlist", func(t *testing.T) {
		engine := newGuardedEngine(config.WebhookConfig{AllowedIPs: []string{"149.154.160.0/20", "10.0.0.1"}}, nil)

		if code := post(engine, update, "", "149.154.167.99:443"); code != http.StatusOK {
			t.Errorf("expected 200 for CIDR match, got %d", code)
		}
		if code := post(engine, update, "", "10.0.0.1:1234"); code != http.StatusOK {
			t.Errorf("expected 200 for exact match, got %d", code)
		}
		if code := post(engine, update, "", "203.0.113.5:1234"); code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", code)
		}
	})

	t.Run("Rate Limit Per Chat", func(t *testing.T) {
		// 10/min gives a burst of 1
		engine := newGuardedEngine(config.WebhookConfig{RateLimitPerMin: 10}, nil)
		other := `{"update_id":2,"message":{"message_id":2,"chat":{"id":8,"type":"private"},"text":"hi"}}`

		if code := post(engine, update, "", ""); code != http.StatusOK {
			t.Fatalf("expected first request to pass, got %d", code)
		}
		if code := post(engine, update, "", ""); code != http.StatusTooManyRequests {
			t.Errorf("expected 429 for same chat, got %d", code)
		}
		if code := post(engine, other, "", ""); code != http.StatusOK {
			t.Errorf("expected other chat to pass, got %d", code)
		}
	})
}

func TestIPAllowlistForwardingHeaders(t *testing.T) {
	update := `{"update_id":1,"message":{"message_id":1,"chat":{"id":7,"type":"private"},"text":"hi"}}`
	allowed := []string{"149.154.160.0/20"}

	tcs := map[string]struct {
		trustedProxies []string
		remoteAddr     string
		headers        map[string]string
		want           int
	}{
		"Spoofed Forwarded For": {
			remoteAddr: "203.0.113.5:1234",
			headers:    map[string]string{"X-Forwarded-For": "149.154.167.99"},
			want:       http.StatusForbidden,
		},
		"Spoofed Real IP": {
			remoteAddr: "203.0.113.5:1234",
			headers:    map[string]string{"X-Real-IP": "149.154.167.99"},
			want:       http.StatusForbidden,
		},
		"Untrusted Proxy": {
			trustedProxies: []string{"10.0.0.0/8"},
			remoteAddr:     "203.0.113.5:1234",
			headers:        map[string]string{"X-Forwarded-For": "149.154.167.99"},
			want:           http.StatusForbidden,
		},
		"Trusted Proxy": {
			trustedProxies: []string{"10.0.0.0/8"},
			remoteAddr:     "10.0.0.2:80",
			headers:        map[string]string{"X-Forwarded-For": "149.154.167.99"},
			want:           http.StatusOK,
		},
		"Trusted Proxy Forwarding Outsider": {
			trustedProxies: []string{"10.0.0.0/8"},
			remoteAddr:     "10.0.0.2:80",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:           http.StatusForbidden,
		},
		"Direct Allowed": {
			remoteAddr: "149.154.167.99:443",
			want:       http.StatusOK,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			engine := newGuardedEngine(config.WebhookConfig{AllowedIPs: allowed, TrustedProxies: tc.trustedProxies}, nil)

			if code := postWithHeaders(engine, update, "", tc.remoteAddr, tc.headers); code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, code)
			}
		})
	}
}
