package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatforge-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Create(ctx context.Context, c *models.Chat) error {
	c.ID = uuid.New()
	if c.Title == "" {
		c.Title = "New Chat"
	}

	query := `INSERT INTO chats (id, project_id, title)
		VALUES ($1, $2, $3) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, c.ID, c.ProjectID, c.Title).Scan(&c.CreatedAt)
}

func (r *ChatRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Chat, error) {
	query := `SELECT id, project_id, title, created_at
		FROM chats WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]*models.Chat, 0)
	for rows.Next() {
		c := &models.Chat{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// GetOwned resolves a chat only when its project belongs to the caller,
// joining through projects so tenancy is enforced in the query itself.
func (r *ChatRepo) GetOwned(ctx context.Context, chatID, userID uuid.UUID) (*models.Chat, error) {
	c := &models.Chat{}
	query := `SELECT c.id, c.project_id, c.title, c.created_at
		FROM chats c
		JOIN projects p ON p.id = c.project_id
		WHERE c.id = $1 AND p.user_id = $2`

	err := r.pool.QueryRow(ctx, query, chatID, userID).Scan(
		&c.ID, &c.ProjectID, &c.Title, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
