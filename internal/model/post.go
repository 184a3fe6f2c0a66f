package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList хранит список строк одной колонкой (JSON-текст),
// чтобы одинаково работать и в Postgres, и в SQLite-тестах.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported source type for StringList")
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(b, (*[]string)(l))
}

// Contains сообщает, есть ли id в списке.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Post — один «вайб» ленты. Контент скрейпится внешним пайплайном,
// для клиента это неизменяемое значение.
type Post struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"not null" json:"content"`
	Preview     string     `json:"preview"`
	URL         string     `json:"url"`
	Type        string     `gorm:"index" json:"type"`
	Author      string     `json:"author"`
	Platform    string     `json:"platform"`
	CreatedAt   time.Time  `json:"created_at"`
	ScrapedAt   time.Time  `json:"scraped_at"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	IsChefsKiss bool       `json:"isChefsKiss"`
}
