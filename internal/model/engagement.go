package model

import "time"

// Bookmark — сохранённый вайб. ID генерируется на клиенте и одинаков
// в локальном кеше и на сервере. Пара (user_id, post_id) уникальна.
type Bookmark struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	UserID  string    `gorm:"index;uniqueIndex:idx_bookmarks_user_post;not null" json:"user_id"`
	PostID  string    `gorm:"uniqueIndex:idx_bookmarks_user_post;not null" json:"post_id"`
	AddedAt time.Time `json:"added_at"`
	Post    Post      `gorm:"foreignKey:PostID;references:ID" json:"post"`
}

// Like — то же, что Bookmark, но со смыслом «нравится» и своей таблицей.
type Like struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	UserID  string    `gorm:"index;uniqueIndex:idx_likes_user_post;not null" json:"user_id"`
	PostID  string    `gorm:"uniqueIndex:idx_likes_user_post;not null" json:"post_id"`
	AddedAt time.Time `json:"added_at"`
	Post    Post      `gorm:"foreignKey:PostID;references:ID" json:"post"`
}
