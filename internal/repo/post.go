package repo

import (
	"Vibes/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrPostNotFound возвращается для неизвестного id вайба.
var ErrPostNotFound = errors.New("post not found")

// FeedQuery описывает одну страницу ленты.
type FeedQuery struct {
	Offset     int
	Limit      int
	Type       string   // фильтр по типу вайба; пусто — без фильтра
	AllowNsfw  bool     // false — тип nsfw исключается
	ExcludeIDs []string // уже просмотренные/прочитанные id
}

// PostRepository — контракт доступа к вайбам.
type PostRepository interface {
	// GetByID возвращает один вайб.
	GetByID(ctx context.Context, id string) (*model.Post, error)

	// FeedPage возвращает страницу ленты с учётом фильтров и исключений.
	FeedPage(ctx context.Context, q FeedQuery) ([]model.Post, error)
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository создаёт реализацию репозитория вайбов.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) FeedPage(ctx context.Context, q FeedQuery) ([]model.Post, error) {
	tx := r.db.WithContext(ctx).Model(&model.Post{})
	if len(q.ExcludeIDs) > 0 {
		tx = tx.Where("id NOT IN ?", q.ExcludeIDs)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if !q.AllowNsfw {
		tx = tx.Where("type <> ?", "nsfw")
	}
	var posts []model.Post
	err := tx.Order("scraped_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
