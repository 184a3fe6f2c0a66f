package service

import (
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidOTP возвращается при неверном или просроченном коде.
var ErrInvalidOTP = errors.New("invalid or expired otp code")

const (
	otpLifetime   = 10 * time.Minute
	tokenLifetime = 30 * 24 * time.Hour
)

// AuthService — вход по e-mail + одноразовому коду.
// Почтовой отправки нет: в dev-режиме код пишется в лог сервера.
type AuthService struct {
	otps     repo.OTPRepository
	profiles repo.ProfileRepository
	secret   string
	logger   *zap.SugaredLogger
}

func NewAuthService(otps repo.OTPRepository, profiles repo.ProfileRepository, secret string, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{otps: otps, profiles: profiles, secret: secret, logger: logger}
}

// RequestOTP генерирует 6-значный код, сохраняет bcrypt-хеш и «отправляет» его.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}
	rec := &model.OTPCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(otpLifetime),
	}
	if err := s.otps.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	// Вместо письма — лог. TODO: подключить почтовый шлюз, когда он появится в деплое.
	s.logger.Infow("OTP issued", "email", email, "code", code)
	return nil
}

// VerifyOTP проверяет код, создаёт профиль при первом входе и возвращает JWT.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (token string, authID string, err error) {
	rec, err := s.otps.LatestActive(ctx, email, time.Now())
	if err != nil {
		if errors.Is(err, repo.ErrOTPNotFound) {
			return "", "", ErrInvalidOTP
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword(rec.CodeHash, []byte(code)) != nil {
		return "", "", ErrInvalidOTP
	}
	if err := s.otps.MarkUsed(ctx, rec.ID); err != nil {
		return "", "", err
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repo.ErrProfileNotFound):
		profile = &model.Profile{
			AuthID:        uuid.NewString(),
			Email:         email,
			ScrolledPosts: model.StringList{},
			ReadPosts:     model.StringList{},
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return "", "", fmt.Errorf("failed to create profile: %w", err)
		}
		s.logger.Infow("profile created", "email", email, "auth_id", profile.AuthID)
	case err != nil:
		return "", "", err
	}

	token, err = s.issueToken(profile.AuthID)
	if err != nil {
		return "", "", err
	}
	return token, profile.AuthID, nil
}

func (s *AuthService) issueToken(authID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   authID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
