package service

import (
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"context"
)

// FeedService отдаёт страницы ленты, не возвращая уже потреблённые вайбы.
type FeedService struct {
	posts    repo.PostRepository
	profiles repo.ProfileRepository
}

func NewFeedService(posts repo.PostRepository, profiles repo.ProfileRepository) *FeedService {
	return &FeedService{posts: posts, profiles: profiles}
}

// Page возвращает страницу ленты для пользователя.
// Исключаются scrolled+read вайбы; если страница получилась меньше половины
// запрошенной, делается вторая, менее строгая попытка — исключаются только read
// (пользователь мог проскроллить почти всё).
func (s *FeedService) Page(ctx context.Context, authID string, offset, limit int, vibeType string) ([]model.Post, error) {
	var scrolled, read []string
	allowNsfw := false
	if authID != "" {
		profile, err := s.profiles.GetByAuthID(ctx, authID)
		if err == nil {
			scrolled = profile.ScrolledPosts
			read = profile.ReadPosts
			allowNsfw = profile.IsNsfw
		}
	}

	exclude := make([]string, 0, len(scrolled)+len(read))
	exclude = append(exclude, scrolled...)
	exclude = append(exclude, read...)

	posts, err := s.posts.FeedPage(ctx, repo.FeedQuery{
		Offset:     offset,
		Limit:      limit,
		Type:       vibeType,
		AllowNsfw:  allowNsfw,
		ExcludeIDs: exclude,
	})
	if err != nil {
		return nil, err
	}
	if len(posts) >= limit/2 {
		return posts, nil
	}

	// Вторая попытка: прокрученное разрешаем снова, прочитанное — нет.
	return s.posts.FeedPage(ctx, repo.FeedQuery{
		Offset:     offset,
		Limit:      limit,
		Type:       vibeType,
		AllowNsfw:  allowNsfw,
		ExcludeIDs: read,
	})
}

// Post возвращает один вайб для детального просмотра.
func (s *FeedService) Post(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}
