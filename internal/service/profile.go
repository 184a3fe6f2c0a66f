package service

import (
	"Vibes/internal/model"
	"Vibes/internal/repo"
	"context"
)

// ProfileService — чтение профиля и обновление read-состояния.
type ProfileService struct {
	profiles repo.ProfileRepository
}

func NewProfileService(profiles repo.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get возвращает профиль по auth_id. Отсутствие — repo.ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, authID string) (*model.Profile, error) {
	return s.profiles.GetByAuthID(ctx, authID)
}

// ReadStateUpdate — частичное обновление профиля: nil-поля не меняются.
type ReadStateUpdate struct {
	ScrolledPosts *model.StringList
	ReadPosts     *model.StringList
	IsNsfw        *bool
}

// UpdateReadState применяет частичное обновление read-состояния.
// Операция идемпотентна на уровне приложения: повтор того же списка безопасен.
func (s *ProfileService) UpdateReadState(ctx context.Context, authID string, upd ReadStateUpdate) error {
	return s.profiles.UpdateReadState(ctx, authID, upd.ScrolledPosts, upd.ReadPosts, upd.IsNsfw)
}
