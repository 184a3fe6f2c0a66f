package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"Vibes/internal/cli/session"
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// Reconciler сверяет локальный кеш с сервером и при расхождении заменяет
// коллекции целиком. Сервер — источник правды; частичных слияний нет.
type Reconciler struct {
	gateway   api.Gateway
	users     repo.UserRepository
	bookmarks repo.EntryRepository
	likes     repo.EntryRepository
	sess      *session.Session
	logger    *zap.SugaredLogger

	inFlight atomic.Bool
}

// NewReconciler собирает реконсилер.
func NewReconciler(gateway api.Gateway, users repo.UserRepository, bookmarks, likes repo.EntryRepository, sess *session.Session, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{
		gateway:   gateway,
		users:     users,
		bookmarks: bookmarks,
		likes:     likes,
		sess:      sess,
		logger:    logger,
	}
}

// Reconcile выполняет один проход сверки. Параллельные вызовы схлопываются:
// пока идёт проход, повторный вызов сразу возвращается без работы.
// Недоступность сервера и отсутствие сессии — не ошибка: кеш остаётся как есть.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.logger.Debugw("reconcile already in flight, skipping")
		return nil
	}
	defer r.inFlight.Store(false)

	authID, err := r.gateway.CurrentIdentity(ctx)
	if err != nil {
		// нет сессии или сети — молча выходим, локальные данные не трогаем
		r.logger.Debugw("reconcile skipped: no identity", "error", err)
		return nil
	}

	if err := r.reconcileUser(ctx, authID); err != nil {
		return err
	}

	// закладки и лайки сверяются независимо: сбой одной коллекции
	// не мешает другой
	if err := r.reconcileEntries(ctx, "bookmarks", r.bookmarks, r.gateway.FetchBookmarks); err != nil {
		r.logger.Warnw("bookmark reconcile failed", "error", err)
	}
	if err := r.reconcileEntries(ctx, "likes", r.likes, r.gateway.FetchLikes); err != nil {
		r.logger.Warnw("like reconcile failed", "error", err)
	}
	return nil
}

// reconcileUser сравнивает локального пользователя с серверным профилем
// и при расхождении заменяет запись целиком.
func (r *Reconciler) reconcileUser(ctx context.Context, authID string) error {
	profile, err := r.gateway.FetchProfile(ctx, authID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			// профиль ещё не создан — пользователя не трогаем
			r.logger.Debugw("no remote profile yet", "auth_id", authID)
			return nil
		}
		r.logger.Warnw("profile fetch failed", "auth_id", authID, "error", err)
		return nil
	}

	local, err := r.users.Current(ctx)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if !userDiverged(local, profile) {
		// расхождения нет — только освежаем сессию из кеша
		r.sess.SetUser(local)
		return nil
	}

	r.logger.Infow("local user diverged, replacing",
		"auth_id", profile.AuthID,
		"had_local", local != nil,
	)
	if err := r.users.Clear(ctx); err != nil {
		return err
	}
	r.sess.Clear()

	fresh := &model.User{
		ID:            profile.AuthID,
		Name:          profile.Name,
		Email:         profile.Email,
		Age:           profile.Age,
		Sex:           profile.Sex,
		AvatarURL:     profile.AvatarURL,
		IsNsfw:        profile.IsNsfw,
		ScrolledPosts: profile.ScrolledPosts,
		ReadPosts:     profile.ReadPosts,
	}
	if err := r.users.Put(ctx, fresh); err != nil {
		return err
	}
	r.sess.SetUser(fresh)
	return nil
}

// userDiverged — предикат расхождения. Сравниваются только id и длины
// списков: оба списка append-only, поэтому равенство длин означает
// равенство содержимого.
func userDiverged(local *model.User, remote *api.RemoteProfile) bool {
	if local == nil {
		return true
	}
	if local.ID != remote.AuthID {
		return true
	}
	if len(local.ReadPosts) != len(remote.ReadPosts) {
		return true
	}
	if len(local.ScrolledPosts) != len(remote.ScrolledPosts) {
		return true
	}
	return false
}

// reconcileEntries сверяет одну коллекцию записей. Совпадение размера
// и множества id означает совпадение коллекций; иначе локальная
// коллекция заменяется серверной.
func (r *Reconciler) reconcileEntries(ctx context.Context, kind string, local repo.EntryRepository, fetch func(context.Context) ([]api.RemoteEntry, error)) error {
	remote, err := fetch(ctx)
	if err != nil {
		return err
	}

	count, err := local.Count(ctx)
	if err != nil {
		return err
	}
	ids, err := local.IDs(ctx)
	if err != nil {
		return err
	}

	if count == len(remote) && sameIDSet(ids, remote) {
		return nil
	}

	r.logger.Infow("collection diverged, replacing",
		"kind", kind,
		"local", count,
		"remote", len(remote),
	)
	if err := local.Clear(ctx); err != nil {
		return err
	}
	entries := make([]model.Entry, 0, len(remote))
	for _, re := range remote {
		entries = append(entries, model.Entry{
			ID:        re.ID,
			UserID:    re.UserID,
			PostID:    re.PostID,
			Vibe:      re.Vibe,
			CreatedAt: re.AddedAt,
		})
	}
	return local.BulkPut(ctx, entries)
}

func sameIDSet(localIDs []string, remote []api.RemoteEntry) bool {
	seen := make(map[string]struct{}, len(localIDs))
	for _, id := range localIDs {
		seen[id] = struct{}{}
	}
	for _, re := range remote {
		if _, ok := seen[re.ID]; !ok {
			return false
		}
	}
	return len(seen) == len(remote)
}
