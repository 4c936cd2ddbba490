package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatforge-backend/internal/models"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	p.ID = uuid.New()

	query := `INSERT INTO projects (id, user_id, name, description)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, p.ID, p.UserID, p.Name, p.Description).Scan(&p.CreatedAt)
}

func (r *ProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	query := `SELECT id, user_id, name, description, created_at
		FROM projects WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetOwned is the ownership-scoped lookup every project-nested operation
// funnels through: it matches only when the project belongs to the caller,
// so a foreign project is indistinguishable from a missing one.
func (r *ProjectRepo) GetOwned(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT id, user_id, name, description, created_at
		FROM projects WHERE id = $1 AND user_id = $2`

	err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
