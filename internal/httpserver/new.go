package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	dispatchHTTP "dispatch-bot/internal/dispatch/delivery/http"
	tgDelivery "dispatch-bot/internal/dispatch/delivery/telegram"
	"dispatch-bot/internal/middleware"
	"dispatch-bot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Dispatch domain
	telegramHandler tgDelivery.Handler
	testHandler     dispatchHTTP.Handler
	middleware      middleware.Middleware

	// Observability
	metricsHandler http.Handler
	metricsPath    string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Dispatch domain
	TelegramHandler tgDelivery.Handler
	TestHandler     dispatchHTTP.Handler // not registered in production
	Middleware      middleware.Middleware
	TrustedProxies  []string // X-Forwarded-For is ignored unless the peer is listed

	// Observability
	MetricsHandler http.Handler
	MetricsPath    string
}

// New creates a new HTTPServer instance with all routes registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		telegramHandler: cfg.TelegramHandler,
		testHandler:     cfg.TestHandler,
		middleware:      cfg.Middleware,
		metricsHandler:  cfg.MetricsHandler,
		metricsPath:     cfg.MetricsPath,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler returns the routed engine.
func (srv HTTPServer) Handler() http.Handler {
	return srv.gin
}
