package sqlite

import (
	"Vibes/internal/cli/model"
	"Vibes/internal/cli/repo"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// LocalStore — локальный кеш клиента поверх SQLite. Хранит три коллекции:
// users (не больше одной записи), bookmarks и likes. Коллекции заменяются
// целиком при синхронизации, поэтому частичных обновлений здесь нет.
type LocalStore struct {
	db    *sql.DB
	login string
}

// OpenForUser открывает (и создаёт при необходимости) файл БД для указанного логина
// и возвращает хранилище. base — корневой каталог пользовательских БД; пустое
// значение означает CLIENT_DB_PATH, а затем каталог конфигурации пользователя.
// Вторым значением возвращается путь к БД.
func OpenForUser(base, login string) (*LocalStore, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for user store")
	}
	if base == "" {
		base = os.Getenv("CLIENT_DB_PATH")
	}
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "Vibes", "users")
	}
	dir := filepath.Join(base, login)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "client.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &LocalStore{db: db, login: login}, dbPath, nil
}

// Close закрывает соединение с БД.
func (s *LocalStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (s *LocalStore) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

// Users возвращает коллекцию users.
func (s *LocalStore) Users() repo.UserRepository {
	return &userRepo{db: s.db}
}

// Bookmarks возвращает коллекцию bookmarks.
func (s *LocalStore) Bookmarks() repo.EntryRepository {
	return &entryRepo{db: s.db, table: "bookmarks"}
}

// Likes возвращает коллекцию likes.
func (s *LocalStore) Likes() repo.EntryRepository {
	return &entryRepo{db: s.db, table: "likes"}
}

// Wipe стирает users, bookmarks и likes одной транзакцией.
// Вызывается при выходе из аккаунта.
func (s *LocalStore) Wipe(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	for _, table := range []string{"users", "bookmarks", "likes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type userRepo struct {
	db *sql.DB
}

var _ repo.UserRepository = (*userRepo)(nil)

const userColumns = `id, name, email, age, sex, avatar_url, is_nsfw, scrolled_posts, read_posts`

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var nsfwInt int
	var scrolledJSON, readJSON string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Sex, &u.AvatarURL,
		&nsfwInt, &scrolledJSON, &readJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	u.IsNsfw = nsfwInt != 0
	if err := json.Unmarshal([]byte(scrolledJSON), &u.ScrolledPosts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(readJSON), &u.ReadPosts); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *userRepo) Current(ctx context.Context) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users LIMIT 1`)
	return scanUser(row)
}

func (r *userRepo) Put(ctx context.Context, u *model.User) error {
	if u == nil || u.ID == "" {
		return errors.New("user id is required")
	}
	scrolledJSON, err := json.Marshal(emptyIfNil(u.ScrolledPosts))
	if err != nil {
		return err
	}
	readJSON, err := json.Marshal(emptyIfNil(u.ReadPosts))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO users(`+userColumns+`)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name, email = excluded.email, age = excluded.age,
            sex = excluded.sex, avatar_url = excluded.avatar_url,
            is_nsfw = excluded.is_nsfw,
            scrolled_posts = excluded.scrolled_posts,
            read_posts = excluded.read_posts`,
		u.ID, u.Name, u.Email, u.Age, u.Sex, u.AvatarURL,
		boolToInt(u.IsNsfw), string(scrolledJSON), string(readJSON))
	return err
}

func (r *userRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}

type entryRepo struct {
	db    *sql.DB
	table string
}

var _ repo.EntryRepository = (*entryRepo)(nil)

func (r *entryRepo) scanEntry(row interface{ Scan(...any) error }) (*model.Entry, error) {
	var e model.Entry
	var vibeJSON string
	var createdUnix int64
	err := row.Scan(&e.ID, &e.UserID, &e.PostID, &vibeJSON, &createdUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(vibeJSON), &e.Vibe); err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(createdUnix, 0).UTC()
	return &e, nil
}

func (r *entryRepo) Get(ctx context.Context, id string) (*model.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, post_id, vibe, created_at FROM `+r.table+` WHERE id = ?`, id)
	return r.scanEntry(row)
}

func (r *entryRepo) Find(ctx context.Context, userID, postID string) (*model.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, post_id, vibe, created_at FROM `+r.table+` WHERE user_id = ? AND post_id = ?`,
		userID, postID)
	return r.scanEntry(row)
}

func (r *entryRepo) ListByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, post_id, vibe, created_at FROM `+r.table+` WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *e)
	}
	return res, rows.Err()
}

func (r *entryRepo) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM `+r.table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *entryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.table).Scan(&n)
	return n, err
}

func (r *entryRepo) Put(ctx context.Context, e *model.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("entry id is required")
	}
	vibeJSON, err := json.Marshal(e.Vibe)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO `+r.table+`(id, user_id, post_id, vibe, created_at)
        VALUES(?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            user_id = excluded.user_id, post_id = excluded.post_id,
            vibe = excluded.vibe, created_at = excluded.created_at`,
		e.ID, e.UserID, e.PostID, string(vibeJSON), e.CreatedAt.Unix())
	return err
}

func (r *entryRepo) BulkPut(ctx context.Context, entries []model.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+r.table+`(id, user_id, post_id, vibe, created_at)
        VALUES(?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            user_id = excluded.user_id, post_id = excluded.post_id,
            vibe = excluded.vibe, created_at = excluded.created_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			return errors.New("entry id is required")
		}
		vibeJSON, err := json.Marshal(e.Vibe)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.UserID, e.PostID, string(vibeJSON), e.CreatedAt.Unix()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *entryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *entryRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
