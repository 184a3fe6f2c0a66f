package main

import (
	"Vibes/internal/config"
	"Vibes/internal/handlers"
	"Vibes/internal/middleware"
	"Vibes/internal/repo"
	"Vibes/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	profileRepo := repo.NewProfileRepository(gormDB)
	postRepo := repo.NewPostRepository(gormDB)

	authService := service.NewAuthService(repo.NewOTPRepository(gormDB), profileRepo, cfg.AuthSecret, sugar)
	profileService := service.NewProfileService(profileRepo)
	feedService := service.NewFeedService(postRepo, profileRepo)
	engagementService := service.NewEngagementService(
		repo.NewBookmarkRepository(gormDB),
		repo.NewLikeRepository(gormDB),
		postRepo,
	)

	h := handlers.NewHandler(authService, profileService, feedService, engagementService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
