package model

import "time"

// Profile — профиль пользователя, единственный источник правды о прочитанном.
// AuthID совпадает с идентификатором в auth-подсистеме и служит первичным ключом.
type Profile struct {
	AuthID        string     `gorm:"primaryKey;column:auth_id" json:"auth_id"`
	Name          string     `json:"name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Age           int        `json:"age"`
	Sex           string     `json:"sex"`
	AvatarURL     string     `json:"avatar_url"`
	IsNsfw        bool       `json:"is_nsfw"`
	ScrolledPosts StringList `gorm:"type:text;column:scrolled_posts" json:"scrolled_posts"`
	ReadPosts     StringList `gorm:"type:text;column:read_posts" json:"read_posts"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OTPCode — одноразовый код входа по e-mail. Храним только bcrypt-хеш.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;not null"`
	CodeHash  []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool
	CreatedAt time.Time
}
