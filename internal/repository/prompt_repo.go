package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatforge-backend/internal/models"
)

type PromptRepo struct {
	pool *pgxpool.Pool
}

func NewPromptRepo(pool *pgxpool.Pool) *PromptRepo {
	return &PromptRepo{pool: pool}
}

// Create inserts a prompt. When the new prompt is flagged default, the clear
// of existing defaults and the insert run in one transaction so concurrent
// creates on the same project cannot leave two defaults behind.
func (r *PromptRepo) Create(ctx context.Context, p *models.Prompt) error {
	p.ID = uuid.New()

	if !p.IsDefault {
		query := `INSERT INTO prompts (id, project_id, title, content, is_default)
			VALUES ($1, $2, $3, $4, FALSE) RETURNING created_at`
		return r.pool.QueryRow(ctx, query, p.ID, p.ProjectID, p.Title, p.Content).Scan(&p.CreatedAt)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE prompts SET is_default = FALSE WHERE project_id = $1 AND is_default = TRUE",
		p.ProjectID,
	); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO prompts (id, project_id, title, content, is_default)
			VALUES ($1, $2, $3, $4, TRUE) RETURNING created_at`,
		p.ID, p.ProjectID, p.Title, p.Content,
	).Scan(&p.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PromptRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Prompt, error) {
	query := `SELECT id, project_id, title, content, is_default, created_at
		FROM prompts WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prompts := make([]*models.Prompt, 0)
	for rows.Next() {
		p := &models.Prompt{}
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Title, &p.Content, &p.IsDefault, &p.CreatedAt); err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// GetDefault returns the project's default prompt, or pgx.ErrNoRows when the
// project has none.
func (r *PromptRepo) GetDefault(ctx context.Context, projectID uuid.UUID) (*models.Prompt, error) {
	p := &models.Prompt{}
	query := `SELECT id, project_id, title, content, is_default, created_at
		FROM prompts WHERE project_id = $1 AND is_default = TRUE
		ORDER BY created_at DESC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&p.ID, &p.ProjectID, &p.Title, &p.Content, &p.IsDefault, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
