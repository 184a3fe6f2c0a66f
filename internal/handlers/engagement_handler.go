package handlers

import (
	"Vibes/internal/middleware"
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"Vibes/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EngagementHandler обслуживает и закладки, и лайки: маршруты
// различаются только видом коллекции.
type EngagementHandler struct {
	EngagementService *service.EngagementService
	Logger            *zap.SugaredLogger
}

func NewEngagementHandler(engagementService *service.EngagementService, logger *zap.SugaredLogger) *EngagementHandler {
	return &EngagementHandler{EngagementService: engagementService, Logger: logger}
}

type insertEntryRequest struct {
	ID      string    `json:"id"`
	PostID  string    `json:"post_id"`
	AddedAt time.Time `json:"added_at"`
}

// List возвращает записи пользователя со встроенными вайбами.
func (h *EngagementHandler) List(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		rows, err := h.EngagementService.List(r.Context(), kind, authID)
		if err != nil {
			h.Logger.Errorw("engagement list failed", "kind", kind, "auth_id", authID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// Insert создаёт запись с клиентским id.
func (h *EngagementHandler) Insert(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req insertEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.PostID == "" {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		entry := &model.Bookmark{ID: req.ID, UserID: authID, PostID: req.PostID, AddedAt: req.AddedAt}
		err := h.EngagementService.Insert(r.Context(), kind, entry)
		switch {
		case errors.Is(err, repo.ErrDuplicateEntry):
			http.Error(w, "already exists", http.StatusConflict)
		case errors.Is(err, repo.ErrPostNotFound):
			http.Error(w, "post not found", http.StatusNotFound)
		case err != nil:
			h.Logger.Errorw("engagement insert failed", "kind", kind, "auth_id", authID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}
}

// Delete удаляет запись по id.
func (h *EngagementHandler) Delete(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id := chi.URLParam(r, "id")
		err := h.EngagementService.Delete(r.Context(), kind, authID, id)
		switch {
		case errors.Is(err, repo.ErrEntryNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case err != nil:
			h.Logger.Errorw("engagement delete failed", "kind", kind, "auth_id", authID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
