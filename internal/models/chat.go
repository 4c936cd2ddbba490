package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. Messages are append-only; nothing else ever writes them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Chat struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateChatRequest struct {
	Title string `json:"title"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse pairs the caller's persisted message with the
// assistant reply generated for it.
type SendMessageResponse struct {
	UserMessage      *Message `json:"userMessage"`
	AssistantMessage *Message `json:"assistantMessage"`
}

// ChatMessage is the role/content shape sent to the model API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
