package session

import (
	"sync"

	"Vibes/internal/cli/model"
)

// Session — разделяемое состояние клиента между командами: снимок
// текущего пользователя и производный от него акцентный цвет ленты.
// Потокобезопасна: её читают команды, а пишут синхронизация и трекер.
type Session struct {
	mu    sync.RWMutex
	user  *model.User
	color string
}

const defaultColor = "gray"

// New возвращает пустую сессию.
func New() *Session {
	return &Session{color: defaultColor}
}

// SetUser заменяет снимок пользователя целиком.
func (s *Session) SetUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = cloneUser(u)
}

// UpdateUser применяет fn к копии текущего снимка и сохраняет результат.
// Если пользователя нет, fn не вызывается.
func (s *Session) UpdateUser(fn func(u *model.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || fn == nil {
		return
	}
	u := cloneUser(s.user)
	fn(u)
	s.user = u
}

// User возвращает копию снимка пользователя, nil — если сессия анонимна.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// SetColor запоминает акцентный цвет текущего вайба.
func (s *Session) SetColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == "" {
		c = defaultColor
	}
	s.color = c
}

// Color возвращает текущий акцентный цвет.
func (s *Session) Color() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// Clear сбрасывает сессию в анонимное состояние.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.color = defaultColor
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.ScrolledPosts = append([]string(nil), u.ScrolledPosts...)
	cp.ReadPosts = append([]string(nil), u.ReadPosts...)
	return &cp
}
