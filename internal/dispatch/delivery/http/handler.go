package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dispatch-bot/internal/model"
)

// recordingTurn collects replies instead of sending them.
type recordingTurn struct {
	activity model.Activity
	replies  []string
}

func (t *recordingTurn) Activity() model.Activity { return t.activity }

func (t *recordingTurn) SendActivity(ctx context.Context, text string) error {
	t.replies = append(t.replies, text)
	return nil
}

func newActivity(conversationID string) model.Activity {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	return model.Activity{
		ID:             uuid.NewString(),
		ChannelID:      ChannelID,
		ConversationID: conversationID,
		Recipient:      model.ChannelAccount{ID: BotID, Name: BotName},
	}
}

// HandleTestMessage runs one message through the dispatcher
// @Summary Test message dispatch
// @Description Send a message through recognition and dispatch and get the bot replies back
// @Tags test
// @Accept json
// @Produce json
// @Param request body TestMessageRequest true "Test message"
// @Success 200 {object} TestTurnResponse
// @Failure 502 {object} TestTurnResponse
// @Router /test/message [post]
func (h *handler) HandleTestMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req TestMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.UserID == "" {
		req.UserID = DefaultUserID
	}
	if req.UserName == "" {
		req.UserName = DefaultUserName
	}

	activity := newActivity(req.ConversationID)
	activity.Type = model.ActivityTypeMessage
	activity.Text = req.Text
	activity.From = model.ChannelAccount{ID: req.UserID, Name: req.UserName}

	t := &recordingTurn{activity: activity}
	if err := h.uc.HandleMessage(ctx, t); err != nil {
		h.l.Errorf(ctx, "internal.dispatch.delivery.http.HandleTestMessage: %v", err)
		c.JSON(http.StatusBadGateway, TestTurnResponse{Success: false, Replies: t.replies, Error: err.Error()})
		return
	}

	h.l.Infof(ctx, "internal.dispatch.delivery.http.HandleTestMessage: text=%q replies=%d", req.Text, len(t.replies))
	c.JSON(http.StatusOK, TestTurnResponse{Success: true, Replies: t.replies})
}

// HandleTestJoin simulates members joining the conversation
// @Summary Test members joining
// @Description Simulate a members-added event and get the greetings back
// @Tags test
// @Accept json
// @Produce json
// @Param request body TestJoinRequest true "Joined members"
// @Success 200 {object} TestTurnResponse
// @Router /test/join [post]
func (h *handler) HandleTestJoin(c *gin.Context) {
	ctx := c.Request.Context()

	var req TestJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	activity := newActivity(req.ConversationID)
	activity.Type = model.ActivityTypeMembersAdded
	for _, m := range req.Members {
		activity.MembersAdded = append(activity.MembersAdded, model.ChannelAccount{ID: m.ID, Name: m.Name})
	}

	t := &recordingTurn{activity: activity}
	if err := h.uc.HandleMembersAdded(ctx, t); err != nil {
		h.l.Errorf(ctx, "internal.dispatch.delivery.http.HandleTestJoin: %v", err)
		c.JSON(http.StatusBadGateway, TestTurnResponse{Success: false, Replies: t.replies, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TestTurnResponse{Success: true, Replies: t.replies})
}

// HandleHealthCheck returns the health status of test endpoints
// @Summary Test health check
// @Description Check if test endpoints are available
// @Tags test
// @Produce json
// @Success 200 {object} HealthCheckResponse
// @Router /test/health [get]
func (h *handler) HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthCheckResponse{
		Status:  "ok",
		Message: "Test endpoints are available",
	})
}
