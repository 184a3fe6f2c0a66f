package repo

import (
	"Vibes/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrProfileNotFound возвращается, когда профиля для identity ещё нет.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository — контракт доступа к профилям для слоя сервиса.
type ProfileRepository interface {
	// GetByAuthID возвращает профиль по идентификатору auth-подсистемы.
	GetByAuthID(ctx context.Context, authID string) (*model.Profile, error)

	// GetByEmail возвращает профиль по e-mail (вход по OTP).
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)

	// Create создаёт новый профиль.
	Create(ctx context.Context, p *model.Profile) error

	// UpdateReadState обновляет read/scrolled-списки и nsfw-флаг.
	// nil-поля не трогаются (частичное обновление).
	UpdateReadState(ctx context.Context, authID string, scrolled, read *model.StringList, isNsfw *bool) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepository создаёт реализацию репозитория профилей.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByAuthID(ctx context.Context, authID string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "auth_id = ?", authID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepo) UpdateReadState(ctx context.Context, authID string, scrolled, read *model.StringList, isNsfw *bool) error {
	updates := map[string]any{}
	if scrolled != nil {
		updates["scrolled_posts"] = *scrolled
	}
	if read != nil {
		updates["read_posts"] = *read
	}
	if isNsfw != nil {
		updates["is_nsfw"] = *isNsfw
	}
	if len(updates) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Model(&model.Profile{}).Where("auth_id = ?", authID).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
