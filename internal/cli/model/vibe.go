package model

import "time"

// Vibe — один элемент ленты. Клиент не владеет контентом: вайб приходит
// с сервера и после встраивания в запись считается неизменяемым значением.
type Vibe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Preview     string    `json:"preview"`
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Author      string    `json:"author"`
	Platform    string    `json:"platform"`
	CreatedAt   time.Time `json:"created_at"`
	ScrapedAt   time.Time `json:"scraped_at"`
	Tags        []string  `json:"tags"`
	IsChefsKiss bool      `json:"isChefsKiss"`
}
