package model

import "time"

// User — локальная копия профиля. В кеше живёт не больше одной записи;
// целиком заменяется при синхронизации и стирается при выходе.
// ScrolledPosts и ReadPosts только растут за время жизни аккаунта.
type User struct {
	ID            string
	Name          string
	Email         string
	Age           int
	Sex           string
	AvatarURL     string
	IsNsfw        bool
	ScrolledPosts []string
	ReadPosts     []string
}

// HasSeen сообщает, был ли вайб уже прокручен или прочитан.
func (u *User) HasSeen(postID string) bool {
	for _, id := range u.ScrolledPosts {
		if id == postID {
			return true
		}
	}
	for _, id := range u.ReadPosts {
		if id == postID {
			return true
		}
	}
	return false
}

// Entry — локальная запись закладки или лайка: формы обеих коллекций
// идентичны, различие только в таблице. Вайб встроен целиком,
// чтобы сохранённое читалось офлайн.
type Entry struct {
	ID        string
	UserID    string
	PostID    string
	Vibe      Vibe
	CreatedAt time.Time
}
