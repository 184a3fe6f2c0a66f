package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"context"
	"errors"

	"go.uber.org/zap"
)

// FeedService отдаёт страницы ленты. В офлайне лента деградирует до
// сохранённых закладок: их вайбы встроены в кеш и доступны без сети.
type FeedService struct {
	gateway   api.Gateway
	users     repo.UserRepository
	bookmarks repo.EntryRepository
	logger    *zap.SugaredLogger
}

func NewFeedService(gateway api.Gateway, users repo.UserRepository, bookmarks repo.EntryRepository, logger *zap.SugaredLogger) *FeedService {
	return &FeedService{gateway: gateway, users: users, bookmarks: bookmarks, logger: logger}
}

// Page возвращает страницу ленты. Второе значение — true, когда сервер
// недоступен и вайбы взяты из локальных закладок.
func (s *FeedService) Page(ctx context.Context, offset, limit int, vibeType string) ([]model.Vibe, bool, error) {
	posts, err := s.gateway.FetchPosts(ctx, offset, limit, vibeType)
	if err == nil {
		return posts, false, nil
	}
	if !errors.Is(err, api.ErrNetwork) {
		return nil, false, err
	}

	s.logger.Infow("server unreachable, serving bookmarks from cache")
	user, uerr := s.users.Current(ctx)
	if uerr != nil {
		if errors.Is(uerr, repo.ErrNotFound) {
			return nil, true, nil
		}
		return nil, true, uerr
	}
	entries, lerr := s.bookmarks.ListByUser(ctx, user.ID)
	if lerr != nil {
		return nil, true, lerr
	}
	vibes := make([]model.Vibe, 0, len(entries))
	for _, e := range entries {
		vibes = append(vibes, e.Vibe)
	}
	return vibes, true, nil
}

// Vibe возвращает один вайб: с сервера, а в офлайне — из закладки,
// если он там сохранён.
func (s *FeedService) Vibe(ctx context.Context, id string) (*model.Vibe, error) {
	v, err := s.gateway.FetchPost(ctx, id)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, api.ErrNetwork) {
		return nil, err
	}

	user, uerr := s.users.Current(ctx)
	if uerr != nil {
		return nil, err
	}
	entry, ferr := s.bookmarks.Find(ctx, user.ID, id)
	if ferr != nil {
		return nil, err
	}
	vibe := entry.Vibe
	return &vibe, nil
}
