package bootstrap

import (
	"fmt"

	"Vibes/internal/cli/api"
	fsrepo "Vibes/internal/cli/repo/fs"
	reposqlite "Vibes/internal/cli/repo/sqlite"
	"Vibes/internal/cli/service"
	"Vibes/internal/cli/session"
	"Vibes/internal/config"

	"go.uber.org/zap"
)

// Env — собранное окружение одной CLI-команды: локальное хранилище,
// шлюз к серверу и сервисы поверх них.
type Env struct {
	Store      *reposqlite.LocalStore
	Gateway    api.Gateway
	Session    *session.Session
	Logger     *zap.SugaredLogger
	Auth       *service.AuthService
	Reconciler *service.Reconciler
	Engagement *service.EngagementService
	Feed       *service.FeedService
	Tracker    *service.ViewTracker
}

// NewGateway возвращает HTTP-шлюз с файловым хранилищем токена.
// Достаточно для команд, которым не нужен локальный кеш.
func NewGateway(cfg *config.Config) api.Gateway {
	return api.NewHTTPGateway(cfg.ServerURL, fsrepo.AuthFSStore{})
}

// OpenEnv открывает окружение для сохранённого логина.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть БД.
func OpenEnv(cfg *config.Config) (*Env, func() error, error) {
	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	if err != nil {
		return nil, nil, fmt.Errorf("нет активного пользователя: выполните login/verify: %w", err)
	}
	return OpenEnvForLogin(cfg, login)
}

// OpenEnvForLogin открывает окружение для явно указанного логина.
// Используется командой verify, пока логин ещё не сохранён.
func OpenEnvForLogin(cfg *config.Config, login string) (*Env, func() error, error) {
	store, _, err := reposqlite.OpenForUser(cfg.ClientDBPath, login)
	if err != nil {
		return nil, nil, fmt.Errorf("open user db: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("migrate user db: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	sugar := logger.Sugar()

	fsStore := fsrepo.AuthFSStore{}
	gateway := api.NewHTTPGateway(cfg.ServerURL, fsStore)
	sess := session.New()

	users := store.Users()
	bookmarks := store.Bookmarks()
	likes := store.Likes()

	env := &Env{
		Store:      store,
		Gateway:    gateway,
		Session:    sess,
		Logger:     sugar,
		Auth:       service.NewAuthService(gateway, fsStore, fsStore, users, bookmarks, likes, sess, sugar),
		Reconciler: service.NewReconciler(gateway, users, bookmarks, likes, sess, sugar),
		Engagement: service.NewEngagementService(gateway, users, bookmarks, likes, sugar),
		Feed:       service.NewFeedService(gateway, users, bookmarks, sugar),
		Tracker:    service.NewViewTracker(gateway, users, sess, sugar, cfg.DwellThreshold()),
	}

	cleanup := func() error {
		env.Tracker.Close()
		_ = logger.Sync()
		return store.Close()
	}
	return env, cleanup, nil
}
