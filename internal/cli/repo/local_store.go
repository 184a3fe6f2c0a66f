package repo

import (
	"Vibes/internal/cli/model"
	"context"
	"errors"
)

// ErrNotFound возвращается, когда записи в локальном кеше нет.
var ErrNotFound = errors.New("record not found in local store")

// UserRepository — коллекция users локального кеша.
// Хранится не больше одной записи; заменяется целиком.
type UserRepository interface {
	// Get возвращает пользователя по id. Отсутствие — ErrNotFound.
	Get(ctx context.Context, id string) (*model.User, error)

	// Current возвращает единственного локального пользователя, если он есть.
	Current(ctx context.Context) (*model.User, error)

	// Put перезаписывает пользователя целиком (upsert по id).
	Put(ctx context.Context, u *model.User) error

	// Clear стирает коллекцию. Используется только синхронизацией и выходом.
	Clear(ctx context.Context) error
}

// EntryRepository — коллекция bookmarks или likes локального кеша.
// Обе коллекции имеют одну форму; реализация привязана к конкретной таблице.
type EntryRepository interface {
	// Get возвращает запись по id. Отсутствие — ErrNotFound.
	Get(ctx context.Context, id string) (*model.Entry, error)

	// Find ищет запись по паре (userID, postID). Отсутствие — ErrNotFound.
	Find(ctx context.Context, userID, postID string) (*model.Entry, error)

	// ListByUser возвращает записи пользователя, свежие первыми.
	ListByUser(ctx context.Context, userID string) ([]model.Entry, error)

	// IDs возвращает id всех записей коллекции.
	IDs(ctx context.Context) ([]string, error)

	// Count возвращает размер коллекции.
	Count(ctx context.Context) (int, error)

	// Put перезаписывает одну запись целиком (upsert по id).
	Put(ctx context.Context, e *model.Entry) error

	// BulkPut перезаписывает записи пачкой; используется синхронизацией.
	BulkPut(ctx context.Context, entries []model.Entry) error

	// Delete удаляет запись по id.
	Delete(ctx context.Context, id string) error

	// Clear стирает коллекцию целиком.
	Clear(ctx context.Context) error
}
