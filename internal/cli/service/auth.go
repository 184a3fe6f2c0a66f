package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/repo"
	"Vibes/internal/cli/session"
	"context"

	"go.uber.org/zap"
)

// AuthService ведёт вход по e-mail с одноразовым кодом и выход.
type AuthService struct {
	gateway   api.Gateway
	tokens    repo.TokenStore
	logins    repo.UserContextStore
	users     repo.UserRepository
	bookmarks repo.EntryRepository
	likes     repo.EntryRepository
	sess      *session.Session
	logger    *zap.SugaredLogger
}

func NewAuthService(gateway api.Gateway, tokens repo.TokenStore, logins repo.UserContextStore, users repo.UserRepository, bookmarks, likes repo.EntryRepository, sess *session.Session, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		gateway:   gateway,
		tokens:    tokens,
		logins:    logins,
		users:     users,
		bookmarks: bookmarks,
		likes:     likes,
		sess:      sess,
		logger:    logger,
	}
}

// RequestCode просит сервер выслать одноразовый код на e-mail.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	return s.gateway.RequestOTP(ctx, email)
}

// Verify обменивает код на токен, сохраняет токен и логин.
// Возвращает auth_id вошедшего пользователя.
func (s *AuthService) Verify(ctx context.Context, email, code string) (string, error) {
	token, authID, err := s.gateway.VerifyOTP(ctx, email, code)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Save(token); err != nil {
		return "", err
	}
	if err := s.logins.SaveLogin(email); err != nil {
		s.logger.Warnw("failed to remember login", "error", err)
	}
	return authID, nil
}

// SignOut стирает токен, сессию и локальные коллекции пользователя.
// Вайбы ленты не трогаем — они не привязаны к аккаунту.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.sess.Clear()
	if err := s.users.Clear(ctx); err != nil {
		return err
	}
	if err := s.bookmarks.Clear(ctx); err != nil {
		return err
	}
	if err := s.likes.Clear(ctx); err != nil {
		return err
	}
	s.logger.Infow("signed out, local cache wiped")
	return nil
}
