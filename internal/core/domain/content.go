package domain

import "time"

type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url,omitempty"`
	Author      string    `json:"author"`
	PublishedOn string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type DailyTip struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}
