package repo

import (
	"Vibes/internal/model"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:?cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// Миграции для всех моделей, используемых в репозиториях
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	t.Cleanup(func() {
		// чистим таблицы, т.к. cache=shared переживает закрытие соединения
		db.Exec("DELETE FROM bookmarks")
		db.Exec("DELETE FROM likes")
		db.Exec("DELETE FROM posts")
		db.Exec("DELETE FROM profiles")
		db.Exec("DELETE FROM otp_codes")
	})
	return db
}

func seedPost(t *testing.T, db *gorm.DB, id, typ string) model.Post {
	t.Helper()
	p := model.Post{
		ID:       id,
		Title:    "title-" + id,
		Content:  "content-" + id,
		Type:     typ,
		Author:   "anon",
		Platform: "reddit",
		Tags:     model.StringList{"tag-" + id},
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed post %s: %v", id, err)
	}
	return p
}
