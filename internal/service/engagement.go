package service

import (
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"context"
	"fmt"
	"time"
)

// EngagementService — серверная сторона закладок и лайков.
// Id записей приходят от клиента: так локальный кеш и сервер держат один ключ.
type EngagementService struct {
	bookmarks repo.EngagementRepository
	likes     repo.EngagementRepository
	posts     repo.PostRepository
}

func NewEngagementService(bookmarks, likes repo.EngagementRepository, posts repo.PostRepository) *EngagementService {
	return &EngagementService{bookmarks: bookmarks, likes: likes, posts: posts}
}

func (s *EngagementService) repoFor(kind string) (repo.EngagementRepository, error) {
	switch kind {
	case "bookmarks":
		return s.bookmarks, nil
	case "likes":
		return s.likes, nil
	default:
		return nil, fmt.Errorf("unknown engagement kind: %q", kind)
	}
}

// List возвращает записи пользователя со встроенными вайбами.
func (s *EngagementService) List(ctx context.Context, kind, userID string) ([]model.Bookmark, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	return r.ListByUser(ctx, userID)
}

// Insert создаёт запись. Вайб должен существовать; AddedAt по умолчанию — сейчас.
func (s *EngagementService) Insert(ctx context.Context, kind string, entry *model.Bookmark) error {
	r, err := s.repoFor(kind)
	if err != nil {
		return err
	}
	if _, err := s.posts.GetByID(ctx, entry.PostID); err != nil {
		return err
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	return r.Insert(ctx, entry)
}

// Delete удаляет запись по id в пределах пользователя.
func (s *EngagementService) Delete(ctx context.Context, kind, userID, id string) error {
	r, err := s.repoFor(kind)
	if err != nil {
		return err
	}
	return r.DeleteByID(ctx, userID, id)
}
