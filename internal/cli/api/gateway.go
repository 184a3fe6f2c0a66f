package api

import (
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RemoteProfile — профиль в том виде, в каком его отдаёт сервер.
type RemoteProfile struct {
	AuthID        string   `json:"auth_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Age           int      `json:"age"`
	Sex           string   `json:"sex"`
	AvatarURL     string   `json:"avatar_url"`
	IsNsfw        bool     `json:"is_nsfw"`
	ScrolledPosts []string `json:"scrolled_posts"`
	ReadPosts     []string `json:"read_posts"`
}

// RemoteEntry — закладка или лайк со встроенным вайбом.
type RemoteEntry struct {
	ID      string     `json:"id"`
	UserID  string     `json:"user_id"`
	PostID  string     `json:"post_id"`
	AddedAt time.Time  `json:"added_at"`
	Vibe    model.Vibe `json:"post"`
}

// ReadStatePatch — частичное обновление read-состояния профиля.
// nil-поле означает «не трогать».
type ReadStatePatch struct {
	ScrolledPosts *[]string `json:"scrolled_posts,omitempty"`
	ReadPosts     *[]string `json:"read_posts,omitempty"`
	IsNsfw        *bool     `json:"is_nsfw,omitempty"`
}

// Gateway — клиентский контракт удалённого сервера. Сервисы работают
// только через него, поэтому в тестах его легко подменить.
type Gateway interface {
	Ping(ctx context.Context) error

	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (token, authID string, err error)
	CurrentIdentity(ctx context.Context) (string, error)

	FetchProfile(ctx context.Context, authID string) (*RemoteProfile, error)
	UpdateReadState(ctx context.Context, authID string, patch ReadStatePatch) error

	FetchBookmarks(ctx context.Context) ([]RemoteEntry, error)
	InsertBookmark(ctx context.Context, id, postID string, addedAt time.Time) error
	DeleteBookmark(ctx context.Context, id string) error

	FetchLikes(ctx context.Context) ([]RemoteEntry, error)
	InsertLike(ctx context.Context, id, postID string, addedAt time.Time) error
	DeleteLike(ctx context.Context, id string) error

	FetchPosts(ctx context.Context, offset, limit int, vibeType string) ([]model.Vibe, error)
	FetchPost(ctx context.Context, id string) (*model.Vibe, error)
}

// HTTPGateway — реализация Gateway поверх JSON HTTP API сервера.
// Токен подхватывается из TokenStore на каждый запрос.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	tokens  repo.TokenStore
}

var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway создаёт шлюз. baseURL — полный адрес сервера со схемой.
func NewHTTPGateway(baseURL string, tokens repo.TokenStore) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// do выполняет запрос и переводит транспортные и статусные ошибки
// в категории пакета. Успешные статусы — 2xx.
func (g *HTTPGateway) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if tok, err := g.tokens.Load(); err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrNotAuthenticated
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return nil, ErrConflict
	default:
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
}

// Ping проверяет доступность сервера.
func (g *HTTPGateway) Ping(ctx context.Context) error {
	_, err := g.do(ctx, http.MethodGet, "/ping", nil)
	return err
}

// RequestOTP просит сервер выдать одноразовый код на e-mail.
func (g *HTTPGateway) RequestOTP(ctx context.Context, email string) error {
	_, err := g.do(ctx, http.MethodPost, "/api/auth/otp", map[string]string{"email": email})
	return err
}

// VerifyOTP обменивает код на токен и auth_id.
func (g *HTTPGateway) VerifyOTP(ctx context.Context, email, code string) (string, string, error) {
	data, err := g.do(ctx, http.MethodPost, "/api/auth/verify", map[string]string{"email": email, "code": code})
	if err != nil {
		return "", "", err
	}
	var vr struct {
		Token  string `json:"token"`
		AuthID string `json:"auth_id"`
	}
	if err := json.Unmarshal(data, &vr); err != nil {
		return "", "", err
	}
	return vr.Token, vr.AuthID, nil
}

// CurrentIdentity возвращает auth_id текущей сессии.
func (g *HTTPGateway) CurrentIdentity(ctx context.Context) (string, error) {
	data, err := g.do(ctx, http.MethodGet, "/api/user", nil)
	if err != nil {
		return "", err
	}
	var cu struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &cu); err != nil {
		return "", err
	}
	return cu.ID, nil
}

// FetchProfile возвращает профиль владельца сессии.
func (g *HTTPGateway) FetchProfile(ctx context.Context, authID string) (*RemoteProfile, error) {
	data, err := g.do(ctx, http.MethodGet, "/api/profiles/"+authID, nil)
	if err != nil {
		return nil, err
	}
	var p RemoteProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateReadState отправляет частичное обновление read-состояния.
func (g *HTTPGateway) UpdateReadState(ctx context.Context, authID string, patch ReadStatePatch) error {
	_, err := g.do(ctx, http.MethodPatch, "/api/profiles/"+authID+"/state", patch)
	return err
}

func (g *HTTPGateway) fetchEntries(ctx context.Context, path string) ([]RemoteEntry, error) {
	data, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var rows []RemoteEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *HTTPGateway) insertEntry(ctx context.Context, path, id, postID string, addedAt time.Time) error {
	payload := map[string]any{"id": id, "post_id": postID, "added_at": addedAt}
	_, err := g.do(ctx, http.MethodPost, path, payload)
	return err
}

// FetchBookmarks возвращает все закладки владельца сессии.
func (g *HTTPGateway) FetchBookmarks(ctx context.Context) ([]RemoteEntry, error) {
	return g.fetchEntries(ctx, "/api/bookmarks")
}

// InsertBookmark создаёт закладку с клиентским id.
func (g *HTTPGateway) InsertBookmark(ctx context.Context, id, postID string, addedAt time.Time) error {
	return g.insertEntry(ctx, "/api/bookmarks", id, postID, addedAt)
}

// DeleteBookmark удаляет закладку по id.
func (g *HTTPGateway) DeleteBookmark(ctx context.Context, id string) error {
	_, err := g.do(ctx, http.MethodDelete, "/api/bookmarks/"+id, nil)
	return err
}

// FetchLikes возвращает все лайки владельца сессии.
func (g *HTTPGateway) FetchLikes(ctx context.Context) ([]RemoteEntry, error) {
	return g.fetchEntries(ctx, "/api/likes")
}

// InsertLike создаёт лайк с клиентским id.
func (g *HTTPGateway) InsertLike(ctx context.Context, id, postID string, addedAt time.Time) error {
	return g.insertEntry(ctx, "/api/likes", id, postID, addedAt)
}

// DeleteLike удаляет лайк по id.
func (g *HTTPGateway) DeleteLike(ctx context.Context, id string) error {
	_, err := g.do(ctx, http.MethodDelete, "/api/likes/"+id, nil)
	return err
}

// FetchPosts возвращает страницу ленты. Сервер сам исключает уже
// просмотренные вайбы владельца сессии.
func (g *HTTPGateway) FetchPosts(ctx context.Context, offset, limit int, vibeType string) ([]model.Vibe, error) {
	path := "/api/posts?offset=" + strconv.Itoa(offset) + "&limit=" + strconv.Itoa(limit)
	if vibeType != "" {
		path += "&type=" + url.QueryEscape(vibeType)
	}
	data, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var posts []model.Vibe
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPost возвращает один вайб по id.
func (g *HTTPGateway) FetchPost(ctx context.Context, id string) (*model.Vibe, error) {
	data, err := g.do(ctx, http.MethodGet, "/api/posts/"+id, nil)
	if err != nil {
		return nil, err
	}
	var v model.Vibe
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
