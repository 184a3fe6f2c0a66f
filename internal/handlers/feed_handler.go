package handlers

import (
	"Vibes/internal/middleware"
	"Vibes/internal/repo"
	"Vibes/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultPageSize = 12

// FeedHandler отдаёт страницы ленты и отдельные вайбы.
type FeedHandler struct {
	FeedService *service.FeedService
	Logger      *zap.SugaredLogger
}

func NewFeedHandler(feedService *service.FeedService, logger *zap.SugaredLogger) *FeedHandler {
	return &FeedHandler{FeedService: feedService, Logger: logger}
}

// Page обрабатывает GET /api/posts?offset=&limit=&type=.
// Анонимный запрос тоже валиден: без профиля нет исключений и nsfw.
func (h *FeedHandler) Page(w http.ResponseWriter, r *http.Request) {
	authID, _ := middleware.GetUserIDFromContext(r.Context())

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	vibeType := r.URL.Query().Get("type")

	posts, err := h.FeedService.Page(r.Context(), authID, offset, limit, vibeType)
	if err != nil {
		h.Logger.Errorw("feed page failed", "auth_id", authID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Post обрабатывает GET /api/posts/{id}.
func (h *FeedHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.FeedService.Post(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("post fetch failed", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, post)
}
