package httpserver

import (
	"github.com/gin-gonic/gin"

	"dispatch-bot/pkg/response"
)

const (
	HealthMessage = "Dispatch bot is up"
	HealthVersion = "1.0.0"
	ServiceName   = "dispatch-bot"
)

func (srv HTTPServer) statusBody(status string) gin.H {
	return gin.H{
		"status":      status,
		"message":     HealthMessage,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the bot is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Bot is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.statusBody("healthy"))
}

// readyCheck reports which transports are wired.
// @Summary Readiness Check
// @Description Check if the bot is ready to accept turns, and on which transports
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Bot is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	body := srv.statusBody("ready")
	body["transports"] = gin.H{
		"telegram": srv.telegramHandler != nil,
		"test":     srv.testRoutesEnabled(),
	}
	body["metrics"] = srv.metricsHandler != nil
	response.OK(c, body)
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Bot is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.statusBody("alive"))
}
