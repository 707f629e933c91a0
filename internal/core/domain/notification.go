package domain

import "time"

// Notification targets one user; an empty UserID marks a broadcast visible to everyone.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"timestamp"`
}

func (n Notification) Broadcast() bool {
	return n.UserID == ""
}
