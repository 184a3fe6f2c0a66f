package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/repo"
	"Vibes/internal/cli/session"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// timerHandle — остановка отложенного срабатывания; позволяет подменять
// таймеры в тестах.
type timerHandle interface {
	Stop() bool
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }

// TimerFactory создаёт отложенный вызов fn через d.
type TimerFactory func(d time.Duration, fn func()) timerHandle

func defaultTimerFactory(d time.Duration, fn func()) timerHandle {
	return realTimer{t: time.AfterFunc(d, fn)}
}

// ViewTracker отмечает вайб просмотренным после непрерывного удержания
// на экране дольше порога. Уход до порога отменяет таймер; уже
// просмотренные вайбы не отмечаются повторно.
type ViewTracker struct {
	gateway   api.Gateway
	users     repo.UserRepository
	sess      *session.Session
	logger    *zap.SugaredLogger
	threshold time.Duration
	newTimer  TimerFactory

	mu     sync.Mutex
	armed  map[string]timerHandle
	closed bool
}

// NewViewTracker собирает трекер с порогом threshold.
func NewViewTracker(gateway api.Gateway, users repo.UserRepository, sess *session.Session, logger *zap.SugaredLogger, threshold time.Duration) *ViewTracker {
	return &ViewTracker{
		gateway:   gateway,
		users:     users,
		sess:      sess,
		logger:    logger,
		threshold: threshold,
		newTimer:  defaultTimerFactory,
		armed:     make(map[string]timerHandle),
	}
}

// SetTimerFactory подменяет источник таймеров. Используется тестами.
func (t *ViewTracker) SetTimerFactory(f TimerFactory) {
	t.newTimer = f
}

// Enter сообщает, что вайб появился на экране: взводится таймер порога.
// Для анонимной сессии и уже просмотренных вайбов — no-op.
func (t *ViewTracker) Enter(ctx context.Context, postID string) {
	user := t.sess.User()
	if user == nil || user.HasSeen(postID) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if _, already := t.armed[postID]; already {
		return
	}
	t.armed[postID] = t.newTimer(t.threshold, func() {
		t.fire(ctx, postID)
	})
}

// Exit сообщает, что вайб ушёл с экрана: невыстреливший таймер снимается.
func (t *ViewTracker) Exit(postID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.armed[postID]; ok {
		h.Stop()
		delete(t.armed, postID)
	}
}

// Close снимает все взведённые таймеры. Новые Enter игнорируются.
func (t *ViewTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, h := range t.armed {
		h.Stop()
		delete(t.armed, id)
	}
}

// fire — срабатывание порога: вайб считается прокрученным.
func (t *ViewTracker) fire(ctx context.Context, postID string) {
	t.mu.Lock()
	delete(t.armed, postID)
	t.mu.Unlock()

	if err := t.mark(ctx, postID, false); err != nil {
		// без повтора: следующая сверка с сервером выправит состояние
		t.logger.Warnw("scroll mark failed", "post_id", postID, "error", err)
	}
}

// MarkRead отмечает вайб прочитанным (открытым целиком), минуя таймер.
func (t *ViewTracker) MarkRead(ctx context.Context, postID string) error {
	return t.mark(ctx, postID, true)
}

// mark дописывает postID в соответствующий список и отправляет его на
// сервер. Сервер первым: при сбое локальный кеш не меняется.
func (t *ViewTracker) mark(ctx context.Context, postID string, read bool) error {
	user, err := t.users.Current(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return api.ErrNotAuthenticated
		}
		return err
	}
	// повторная проверка по свежей записи: между взводом и срабатыванием
	// мог пройти реконсайл
	if user.HasSeen(postID) {
		return nil
	}

	var patch api.ReadStatePatch
	if read {
		user.ReadPosts = append(user.ReadPosts, postID)
		patch.ReadPosts = &user.ReadPosts
	} else {
		user.ScrolledPosts = append(user.ScrolledPosts, postID)
		patch.ScrolledPosts = &user.ScrolledPosts
	}
	if err := t.gateway.UpdateReadState(ctx, user.ID, patch); err != nil {
		return err
	}
	if err := t.users.Put(ctx, user); err != nil {
		return err
	}
	t.sess.SetUser(user)
	return nil
}
