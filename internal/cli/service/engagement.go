package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ToggleResult — исход переключения закладки или лайка.
type ToggleResult int

const (
	ToggleAdded ToggleResult = iota
	ToggleRemoved
)

// ErrToggleInFlight возвращается, когда переключение той же пары
// (пользователь, вайб) ещё не завершилось.
var ErrToggleInFlight = errors.New("toggle already in flight")

// EngagementService переключает закладки и лайки. Порядок строгий:
// сначала сервер, потом локальный кеш — при недоступном сервере
// кеш не меняется и расхождение не возникает.
type EngagementService struct {
	gateway   api.Gateway
	users     repo.UserRepository
	bookmarks repo.EntryRepository
	likes     repo.EntryRepository
	logger    *zap.SugaredLogger

	mu       sync.Mutex
	inFlight map[string]struct{} // ключ: userID+"/"+postID
}

func NewEngagementService(gateway api.Gateway, users repo.UserRepository, bookmarks, likes repo.EntryRepository, logger *zap.SugaredLogger) *EngagementService {
	return &EngagementService{
		gateway:   gateway,
		users:     users,
		bookmarks: bookmarks,
		likes:     likes,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

// ToggleBookmark добавляет или убирает вайб из закладок.
func (s *EngagementService) ToggleBookmark(ctx context.Context, vibe model.Vibe) (ToggleResult, error) {
	return s.toggle(ctx, vibe, s.bookmarks, s.gateway.InsertBookmark, s.gateway.DeleteBookmark)
}

// ToggleLike добавляет или убирает лайк вайба.
func (s *EngagementService) ToggleLike(ctx context.Context, vibe model.Vibe) (ToggleResult, error) {
	return s.toggle(ctx, vibe, s.likes, s.gateway.InsertLike, s.gateway.DeleteLike)
}

func (s *EngagementService) toggle(
	ctx context.Context,
	vibe model.Vibe,
	entries repo.EntryRepository,
	remoteInsert func(ctx context.Context, id, postID string, addedAt time.Time) error,
	remoteDelete func(ctx context.Context, id string) error,
) (ToggleResult, error) {
	user, err := s.users.Current(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, api.ErrNotAuthenticated
		}
		return 0, err
	}

	key := user.ID + "/" + vibe.ID
	if !s.acquire(key) {
		return 0, ErrToggleInFlight
	}
	defer s.release(key)

	existing, err := entries.Find(ctx, user.ID, vibe.ID)
	switch {
	case err == nil:
		// запись есть — снимаем. Сервер первым: если он недоступен,
		// локальная запись остаётся на месте.
		if err := remoteDelete(ctx, existing.ID); err != nil && !errors.Is(err, api.ErrNotFound) {
			return 0, err
		}
		if err := entries.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return 0, err
		}
		return ToggleRemoved, nil

	case errors.Is(err, repo.ErrNotFound):
		entry := model.Entry{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			PostID:    vibe.ID,
			Vibe:      vibe,
			CreatedAt: time.Now(),
		}
		if err := remoteInsert(ctx, entry.ID, entry.PostID, entry.CreatedAt); err != nil && !errors.Is(err, api.ErrConflict) {
			return 0, err
		}
		if err := entries.Put(ctx, &entry); err != nil {
			return 0, err
		}
		return ToggleAdded, nil

	default:
		return 0, err
	}
}

func (s *EngagementService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *EngagementService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
