package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// fakeGateway — управляемый шлюз для тестов сервисов. Нулевое значение
// ведёт себя как сервер с пустыми коллекциями и без сессии.
type fakeGateway struct {
	mu sync.Mutex

	identity    string
	identityErr error

	profile    *api.RemoteProfile
	profileErr error

	bookmarks []api.RemoteEntry
	likes     []api.RemoteEntry
	fetchErr  error

	insertErr error
	deleteErr error
	patchErr  error

	pingErr error

	inserted []string
	deleted  []string
	patches  []api.ReadStatePatch
}

var _ api.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) Ping(ctx context.Context) error { return g.pingErr }

func (g *fakeGateway) RequestOTP(ctx context.Context, email string) error { return nil }

func (g *fakeGateway) VerifyOTP(ctx context.Context, email, code string) (string, string, error) {
	return "tok", g.identity, g.identityErr
}

func (g *fakeGateway) CurrentIdentity(ctx context.Context) (string, error) {
	if g.identityErr != nil {
		return "", g.identityErr
	}
	if g.identity == "" {
		return "", api.ErrNotAuthenticated
	}
	return g.identity, nil
}

func (g *fakeGateway) FetchProfile(ctx context.Context, authID string) (*api.RemoteProfile, error) {
	if g.profileErr != nil {
		return nil, g.profileErr
	}
	if g.profile == nil {
		return nil, api.ErrNotFound
	}
	cp := *g.profile
	return &cp, nil
}

func (g *fakeGateway) UpdateReadState(ctx context.Context, authID string, patch api.ReadStatePatch) error {
	if g.patchErr != nil {
		return g.patchErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.patches = append(g.patches, patch)
	return nil
}

func (g *fakeGateway) FetchBookmarks(ctx context.Context) ([]api.RemoteEntry, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return append([]api.RemoteEntry(nil), g.bookmarks...), nil
}

func (g *fakeGateway) FetchLikes(ctx context.Context) ([]api.RemoteEntry, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return append([]api.RemoteEntry(nil), g.likes...), nil
}

func (g *fakeGateway) InsertBookmark(ctx context.Context, id, postID string, addedAt time.Time) error {
	return g.recordInsert(id)
}

func (g *fakeGateway) DeleteBookmark(ctx context.Context, id string) error {
	return g.recordDelete(id)
}

func (g *fakeGateway) InsertLike(ctx context.Context, id, postID string, addedAt time.Time) error {
	return g.recordInsert(id)
}

func (g *fakeGateway) DeleteLike(ctx context.Context, id string) error {
	return g.recordDelete(id)
}

func (g *fakeGateway) recordInsert(id string) error {
	if g.insertErr != nil {
		return g.insertErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inserted = append(g.inserted, id)
	return nil
}

func (g *fakeGateway) recordDelete(id string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, id)
	return nil
}

func (g *fakeGateway) FetchPosts(ctx context.Context, offset, limit int, vibeType string) ([]model.Vibe, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return nil, nil
}

func (g *fakeGateway) FetchPost(ctx context.Context, id string) (*model.Vibe, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return &model.Vibe{ID: id}, nil
}

// memUsers — пользователи в памяти.
type memUsers struct {
	mu     sync.Mutex
	user   *model.User
	clears int
	puts   int
}

var _ repo.UserRepository = (*memUsers)(nil)

func (m *memUsers) Get(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil || m.user.ID != id {
		return nil, repo.ErrNotFound
	}
	cp := *m.user
	return &cp, nil
}

func (m *memUsers) Current(ctx context.Context) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, repo.ErrNotFound
	}
	cp := *m.user
	cp.ScrolledPosts = append([]string(nil), m.user.ScrolledPosts...)
	cp.ReadPosts = append([]string(nil), m.user.ReadPosts...)
	return &cp, nil
}

func (m *memUsers) Put(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.user = &cp
	m.puts++
	return nil
}

func (m *memUsers) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.clears++
	return nil
}

// memEntries — коллекция записей в памяти.
type memEntries struct {
	mu      sync.Mutex
	entries map[string]model.Entry
	clears  int
}

var _ repo.EntryRepository = (*memEntries)(nil)

func newMemEntries() *memEntries {
	return &memEntries{entries: make(map[string]model.Entry)}
}

func (m *memEntries) Get(ctx context.Context, id string) (*model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (m *memEntries) Find(ctx context.Context, userID, postID string) (*model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.PostID == postID {
			cp := e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memEntries) ListByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []model.Entry
	for _, e := range m.entries {
		if e.UserID == userID {
			res = append(res, e)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (m *memEntries) IDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memEntries) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), nil
}

func (m *memEntries) Put(ctx context.Context, e *model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = *e
	return nil
}

func (m *memEntries) BulkPut(ctx context.Context, entries []model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return nil
}

func (m *memEntries) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memEntries) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]model.Entry)
	m.clears++
	return nil
}

// memTokens и memLogins — файловые хранилища в памяти.
type memTokens struct{ token string }

func (m *memTokens) Save(t string) error { m.token = t; return nil }
func (m *memTokens) Load() (string, error) {
	if m.token == "" {
		return "", repo.ErrNotFound
	}
	return m.token, nil
}
func (m *memTokens) Clear() error { m.token = ""; return nil }

type memLogins struct{ login string }

func (m *memLogins) SaveLogin(l string) error { m.login = l; return nil }
func (m *memLogins) LoadLogin() (string, error) {
	if m.login == "" {
		return "", repo.ErrNotFound
	}
	return m.login, nil
}
