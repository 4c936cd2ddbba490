package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"chatforge-backend/internal/models"
)

type ownedChatStore interface {
	GetOwned(ctx context.Context, chatID, userID uuid.UUID) (*models.Chat, error)
}

type messageStore interface {
	Append(ctx context.Context, m *models.Message) error
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]*models.Message, error)
}

// completionGateway is the single round trip to the model API.
type completionGateway interface {
	Complete(ctx context.Context, systemText string, history []models.ChatMessage) (string, error)
}

type contextAssembler interface {
	Assemble(ctx context.Context, chat *models.Chat) (*ChatContext, error)
}

// ChatService runs the send-message flow: persist the user's message, build
// the model context, call the gateway, persist the reply.
type ChatService struct {
	chatRepo    ownedChatStore
	messageRepo messageStore
	assembler   contextAssembler
	gateway     completionGateway
}

func NewChatService(chatRepo ownedChatStore, messageRepo messageStore, assembler contextAssembler, gateway completionGateway) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		assembler:   assembler,
		gateway:     gateway,
	}
}

// SendMessage persists the user message before calling the model, so a
// failed completion leaves a user message with no paired reply. Clients must
// tolerate that unanswered tail; re-sending starts a fresh exchange.
func (s *ChatService) SendMessage(ctx context.Context, chatID, userID uuid.UUID, content string) (*models.SendMessageResponse, error) {
	chat, err := s.chatRepo.GetOwned(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Chat not found"}
		}
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "Message content is required"}}
	}

	userMsg := &models.Message{
		ChatID:  chat.ID,
		Role:    models.RoleUser,
		Content: content,
	}
	if err := s.messageRepo.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	// The window read here picks up the message appended above, so the model
	// sees the user's latest turn as the tail of the history.
	chatCtx, err := s.assembler.Assemble(ctx, chat)
	if err != nil {
		return nil, err
	}

	assistantText, err := s.gateway.Complete(ctx, chatCtx.SystemText, chatCtx.Messages)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.Message{
		ChatID:  chat.ID,
		Role:    models.RoleAssistant,
		Content: assistantText,
	}
	if err := s.messageRepo.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &models.SendMessageResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// ListMessages returns the chat's full history in append order.
func (s *ChatService) ListMessages(ctx context.Context, chatID, userID uuid.UUID) ([]*models.Message, error) {
	chat, err := s.chatRepo.GetOwned(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Chat not found"}
		}
		return nil, err
	}

	return s.messageRepo.ListByChat(ctx, chat.ID)
}
