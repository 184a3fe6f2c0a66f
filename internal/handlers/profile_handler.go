package handlers

import (
	"Vibes/internal/middleware"
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"Vibes/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler отдаёт профиль и принимает обновления read-состояния.
type ProfileHandler struct {
	ProfileService *service.ProfileService
	Logger         *zap.SugaredLogger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{ProfileService: profileService, Logger: logger}
}

// Get возвращает профиль. Доступен только владельцу.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	if id != authID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	profile, err := h.ProfileService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("profile Get failed", "auth_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type readStateRequest struct {
	ScrolledPosts *model.StringList `json:"scrolled_posts,omitempty"`
	ReadPosts     *model.StringList `json:"read_posts,omitempty"`
	IsNsfw        *bool             `json:"is_nsfw,omitempty"`
}

// UpdateState частично обновляет scrolled_posts/read_posts/is_nsfw.
func (h *ProfileHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	if id != authID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req readStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.ProfileService.UpdateReadState(r.Context(), id, service.ReadStateUpdate{
		ScrolledPosts: req.ScrolledPosts,
		ReadPosts:     req.ReadPosts,
		IsNsfw:        req.IsNsfw,
	})
	if err != nil {
		if errors.Is(err, repo.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("UpdateState failed", "auth_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
