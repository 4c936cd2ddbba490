package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chatforge-backend/internal/middleware"
	"chatforge-backend/internal/models"
)

type promptRepository interface {
	Create(ctx context.Context, p *models.Prompt) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Prompt, error)
}

type PromptHandler struct {
	projectRepo projectRepository
	promptRepo  promptRepository
}

func NewPromptHandler(projectRepo projectRepository, promptRepo promptRepository) *PromptHandler {
	return &PromptHandler{projectRepo: projectRepo, promptRepo: promptRepo}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	// Ownership-scoped lookup: a foreign project reads as missing
	project, err := h.projectRepo.GetOwned(r.Context(), projectID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found", r))
		return
	}

	prompts, err := h.promptRepo.ListByProject(r.Context(), project.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts})
}

func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	var req models.CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if len(req.Title) < 2 {
		fieldErrors["title"] = "Title must be at least 2 characters"
	}
	if len(req.Content) < 5 {
		fieldErrors["content"] = "Content must be at least 5 characters"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	project, err := h.projectRepo.GetOwned(r.Context(), projectID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found", r))
		return
	}

	prompt := &models.Prompt{
		ProjectID: project.ID,
		Title:     req.Title,
		Content:   req.Content,
		IsDefault: req.IsDefault,
	}

	if err := h.promptRepo.Create(r.Context(), prompt); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"prompt": prompt})
}
