package handlers

import (
	"Vibes/internal/config"
	"Vibes/internal/middleware"
	"Vibes/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService *service.AuthService,
	profileService *service.ProfileService,
	feedService *service.FeedService,
	engagementService *service.EngagementService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(authService, logger, config)
	profileHandler := NewProfileHandler(profileService, logger)
	feedHandler := NewFeedHandler(feedService, logger)
	engagementHandler := NewEngagementHandler(engagementService, logger)

	// Connectivity probe
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// Auth routes
	r.Post("/api/auth/otp", authHandler.RequestOTP)
	r.Post("/api/auth/verify", authHandler.VerifyOTP)
	r.Get("/api/user", authHandler.CurrentUser)

	// Profile routes
	r.Get("/api/profiles/{id}", profileHandler.Get)
	r.Patch("/api/profiles/{id}/state", profileHandler.UpdateState)

	// Feed routes
	r.Get("/api/posts", feedHandler.Page)
	r.Get("/api/posts/{id}", feedHandler.Post)

	// Engagement routes (bookmarks and likes share the handler)
	r.Get("/api/bookmarks", engagementHandler.List("bookmarks"))
	r.Post("/api/bookmarks", engagementHandler.Insert("bookmarks"))
	r.Delete("/api/bookmarks/{id}", engagementHandler.Delete("bookmarks"))
	r.Get("/api/likes", engagementHandler.List("likes"))
	r.Post("/api/likes", engagementHandler.Insert("likes"))
	r.Delete("/api/likes/{id}", engagementHandler.Delete("likes"))

	return &Handler{Router: r}
}

// writeJSON — общий ответ JSON для всех хендлеров.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
