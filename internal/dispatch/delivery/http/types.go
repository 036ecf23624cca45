package http

// TestMessageRequest represents a test message request
type TestMessageRequest struct {
	Text           string `json:"text" binding:"required"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	ConversationID string `json:"conversation_id"`
}

// TestJoinRequest simulates members joining the conversation
type TestJoinRequest struct {
	Members        []TestMember `json:"members" binding:"required"`
	ConversationID string       `json:"conversation_id"`
}

// TestMember is one simulated participant
type TestMember struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// TestTurnResponse lists the replies the bot sent for one simulated turn
type TestTurnResponse struct {
	Success bool     `json:"success"`
	Replies []string `json:"replies"`
	Error   string   `json:"error,omitempty"`
}

// HealthCheckResponse represents a health check response
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
