package repo

import (
	"Vibes/internal/model"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с Postgres и прогоняет автомиграции.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет автомиграции всех серверных моделей.
// Вынесено отдельно, чтобы тесты могли мигрировать in-memory SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Profile{},
		&model.Post{},
		&model.Bookmark{},
		&model.Like{},
		&model.OTPCode{},
	)
}
