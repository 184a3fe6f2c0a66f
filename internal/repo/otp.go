package repo

import (
	"Vibes/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrOTPNotFound возвращается, когда живого кода для e-mail нет.
var ErrOTPNotFound = errors.New("otp code not found")

// OTPRepository — хранилище одноразовых кодов входа.
type OTPRepository interface {
	// Save сохраняет новый код, предварительно инвалидировав старые для этого e-mail.
	Save(ctx context.Context, code *model.OTPCode) error

	// LatestActive возвращает последний непогашенный и непросроченный код.
	LatestActive(ctx context.Context, email string, now time.Time) (*model.OTPCode, error)

	// MarkUsed гасит код.
	MarkUsed(ctx context.Context, id uint) error
}

type otpRepo struct {
	db *gorm.DB
}

// NewOTPRepository создаёт реализацию хранилища кодов.
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepo{db: db}
}

func (r *otpRepo) Save(ctx context.Context, code *model.OTPCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.OTPCode{}).
			Where("email = ? AND used = ?", code.Email, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *otpRepo) LatestActive(ctx context.Context, email string, now time.Time) (*model.OTPCode, error) {
	var c model.OTPCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", email, false, now).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *otpRepo) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.OTPCode{ID: id}).Update("used", true).Error
}
