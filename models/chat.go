package models

import "time"

const (
	RoleUserMessage      = "user"
	RoleAssistantMessage = "assistant"
)

// ChatMessage is one entry of the append-only conversation log.
type ChatMessage struct {
	ID        int64     `bson:"id" json:"-"`
	UserID    *int64    `bson:"userId,omitempty" json:"-"`
	SessionID string    `bson:"sessionId" json:"-"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// ChatRequest is the payload accepted by /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required,max=2000"`
	SessionID string `json:"session_id" binding:"max=64"`
}

// BotResponse is the reply of a single chat turn.
type BotResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
	Link   string `json:"link"`
}
