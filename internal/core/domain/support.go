package domain

import "time"

type TicketStatus string

const (
	TicketPending  TicketStatus = "pending"
	TicketResolved TicketStatus = "resolved"
)

type ExpertRequest struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	FileReference string       `json:"file_reference,omitempty"`
	Description   string       `json:"description"`
	Status        TicketStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

type Complaint struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Type            string       `json:"type"`
	Description     string       `json:"description"`
	EvidenceFile    string       `json:"evidence_file,omitempty"`
	EvidenceExcerpt string       `json:"evidence_excerpt,omitempty"`
	Status          TicketStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"subscribed_at"`
}
