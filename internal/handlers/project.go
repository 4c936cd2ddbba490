package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"chatforge-backend/internal/middleware"
	"chatforge-backend/internal/models"
)

// projectRepository is the slice of repository.ProjectRepo the handlers use.
type projectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	GetOwned(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)
}

type ProjectHandler struct {
	projectRepo projectRepository
}

func NewProjectHandler(projectRepo projectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	projects, err := h.projectRepo.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if len(req.Name) < 2 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"name": "Name must be at least 2 characters"}, r))
		return
	}

	project := &models.Project{
		UserID:      middleware.GetUserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.projectRepo.Create(r.Context(), project); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"project": project})
}
