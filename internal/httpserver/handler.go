package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	dispatchHTTP "dispatch-bot/internal/dispatch/delivery/http"
	"dispatch-bot/internal/model"
)

const defaultMetricsPath = "/metrics"

func (srv HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	if srv.mode != gin.ReleaseMode {
		srv.gin.Use(gin.Logger())
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	if srv.metricsHandler != nil {
		path := srv.metricsPath
		if path == "" {
			path = defaultMetricsPath
		}
		srv.gin.GET(path, gin.WrapH(srv.metricsHandler))
	}
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.telegramHandler != nil {
		srv.gin.POST("/webhook/telegram", srv.middleware.TelegramWebhookGuard(), srv.telegramHandler.HandleWebhook)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}

	if srv.testRoutesEnabled() {
		dispatchHTTP.RegisterRoutes(srv.gin.Group("/test"), srv.testHandler)
		srv.l.Infof(ctx, "Test routes registered under /test (environment: %s)", srv.environment)
	}
}

func (srv HTTPServer) testRoutesEnabled() bool {
	return srv.testHandler != nil && srv.environment != string(model.EnvironmentProduction)
}
