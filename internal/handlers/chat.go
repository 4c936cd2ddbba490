package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chatforge-backend/internal/middleware"
	"chatforge-backend/internal/models"
	"chatforge-backend/internal/services"
)

type chatRepository interface {
	Create(ctx context.Context, c *models.Chat) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Chat, error)
}

type ChatHandler struct {
	projectRepo projectRepository
	chatRepo    chatRepository
	chatService *services.ChatService
}

func NewChatHandler(projectRepo projectRepository, chatRepo chatRepository, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		projectRepo: projectRepo,
		chatRepo:    chatRepo,
		chatService: chatService,
	}
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	project, err := h.projectRepo.GetOwned(r.Context(), projectID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found", r))
		return
	}

	var req models.CreateChatRequest
	if r.Body != nil {
		// Title is optional; an empty body means "New Chat"
		json.NewDecoder(r.Body).Decode(&req)
	}

	chat := &models.Chat{
		ProjectID: project.ID,
		Title:     req.Title,
	}

	if err := h.chatRepo.Create(r.Context(), chat); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"chat": chat})
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid project ID", r))
		return
	}

	project, err := h.projectRepo.GetOwned(r.Context(), projectID, middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Project not found", r))
		return
	}

	chats, err := h.chatRepo.ListByProject(r.Context(), project.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := uuid.Parse(chi.URLParam(r, "chatId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chat ID", r))
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), chatID, middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := uuid.Parse(chi.URLParam(r, "chatId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chat ID", r))
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.chatService.SendMessage(r.Context(), chatID, middleware.GetUserID(r.Context()), req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
