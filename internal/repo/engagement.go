package repo

import (
	"Vibes/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateEntry возвращается при нарушении уникальности (user_id, post_id) или id.
var ErrDuplicateEntry = errors.New("duplicate engagement entry")

// ErrEntryNotFound возвращается, когда записи с таким id нет.
var ErrEntryNotFound = errors.New("engagement entry not found")

// EngagementRepository — общий контракт для закладок и лайков:
// формы таблиц идентичны, различается только модель.
type EngagementRepository interface {
	// ListByUser возвращает все записи пользователя вместе со встроенным вайбом.
	ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error)

	// Insert создаёт запись с клиентским id. Конфликт — ErrDuplicateEntry.
	Insert(ctx context.Context, b *model.Bookmark) error

	// DeleteByID удаляет запись по id. Отсутствие — ErrEntryNotFound.
	DeleteByID(ctx context.Context, userID, id string) error
}

type bookmarkRepo struct {
	db *gorm.DB
}

// NewBookmarkRepository создаёт репозиторий закладок.
func NewBookmarkRepository(db *gorm.DB) EngagementRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	var rows []model.Bookmark
	err := r.db.WithContext(ctx).Preload("Post").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *bookmarkRepo) Insert(ctx context.Context, b *model.Bookmark) error {
	err := r.db.WithContext(ctx).Omit("Post").Create(b).Error
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (r *bookmarkRepo) DeleteByID(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Bookmark{ID: id})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type likeRepo struct {
	db *gorm.DB
}

// NewLikeRepository создаёт репозиторий лайков поверх той же формы записей.
func NewLikeRepository(db *gorm.DB) EngagementRepository {
	return &likeRepo{db: db}
}

func (r *likeRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	var rows []model.Like
	err := r.db.WithContext(ctx).Preload("Post").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Bookmark, 0, len(rows))
	for _, l := range rows {
		out = append(out, model.Bookmark(l))
	}
	return out, nil
}

func (r *likeRepo) Insert(ctx context.Context, b *model.Bookmark) error {
	l := model.Like(*b)
	err := r.db.WithContext(ctx).Omit("Post").Create(&l).Error
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (r *likeRepo) DeleteByID(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Like{ID: id})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// isUniqueViolation распознаёт нарушение уникальности и в Postgres, и в SQLite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
