package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"chatforge-backend/internal/models"
)

// ContextWindowSize bounds how much history goes to the model. A trailing
// window is a deliberate simplification: no summarization, no token
// accounting, so very long conversations lose their early turns.
const ContextWindowSize = 20

const fallbackInstruction = "You are a helpful assistant."

// defaultPromptStore is the slice of PromptRepo the assembler needs.
type defaultPromptStore interface {
	GetDefault(ctx context.Context, projectID uuid.UUID) (*models.Prompt, error)
}

type recentMessageStore interface {
	ListRecent(ctx context.Context, chatID uuid.UUID, limit int) ([]*models.Message, error)
}

// ChatContext is what the model gateway receives: one system instruction and
// the chronological history it applies to.
type ChatContext struct {
	SystemText string
	Messages   []models.ChatMessage
}

type ContextAssembler struct {
	promptRepo  defaultPromptStore
	messageRepo recentMessageStore
	now         func() time.Time
}

func NewContextAssembler(promptRepo defaultPromptStore, messageRepo recentMessageStore) *ContextAssembler {
	return &ContextAssembler{
		promptRepo:  promptRepo,
		messageRepo: messageRepo,
		now:         time.Now,
	}
}

// Assemble builds the model context for a chat the caller has already
// authorized: the project's default prompt (or the generic fallback) plus the
// trailing message window in chronological order.
func (a *ContextAssembler) Assemble(ctx context.Context, chat *models.Chat) (*ChatContext, error) {
	instruction := fallbackInstruction
	prompt, err := a.promptRepo.GetDefault(ctx, chat.ProjectID)
	if err == nil {
		instruction = prompt.Content
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	recent, err := a.messageRepo.ListRecent(ctx, chat.ID, ContextWindowSize)
	if err != nil {
		return nil, err
	}

	// Newest-first from the store; reverse to chronological and keep only
	// the conversational roles.
	history := make([]models.ChatMessage, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			continue
		}
		history = append(history, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	return &ChatContext{
		SystemText: composeSystemText(instruction, a.now()),
		Messages:   history,
	}, nil
}

func composeSystemText(instruction string, now time.Time) string {
	today := now.Format("02 January 2006")

	return fmt.Sprintf(`%s

Rules:
1) If user says only "hi" or "hello", reply normally with a greeting.
2) If user asks today's date, reply with: %s
3) Answer directly. No generic filler.
4) Keep it short.`, instruction, today)
}
