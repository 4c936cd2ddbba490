package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatforge-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Append inserts a message with a server-assigned id and timestamp. Messages
// are never updated or deleted; created_at is the sole ordering authority.
func (r *MessageRepo) Append(ctx context.Context, m *models.Message) error {
	m.ID = uuid.New()

	query := `INSERT INTO messages (id, chat_id, role, content)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, m.ID, m.ChatID, m.Role, m.Content).Scan(&m.CreatedAt)
}

func (r *MessageRepo) ListByChat(ctx context.Context, chatID uuid.UUID) ([]*models.Message, error) {
	query := `SELECT id, chat_id, role, content, created_at
		FROM messages WHERE chat_id = $1 ORDER BY created_at ASC`

	return r.queryMessages(ctx, query, chatID)
}

// ListRecent returns up to limit of the newest messages, newest first. The
// caller reverses them when chronological order is needed.
func (r *MessageRepo) ListRecent(ctx context.Context, chatID uuid.UUID, limit int) ([]*models.Message, error) {
	query := `SELECT id, chat_id, role, content, created_at
		FROM messages WHERE chat_id = $1 ORDER BY created_at DESC LIMIT $2`

	return r.queryMessages(ctx, query, chatID, limit)
}

func (r *MessageRepo) queryMessages(ctx context.Context, query string, args ...interface{}) ([]*models.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
