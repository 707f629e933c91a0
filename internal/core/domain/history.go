package domain

import "time"

type ActionType string

const (
	ActionScan     ActionType = "scan"
	ActionNewsView ActionType = "news_view"
)

func (a ActionType) Valid() bool {
	return a == ActionScan || a == ActionNewsView
}

// HistoryEntry records one user action; scan entries carry verdict fields,
// news_view entries carry article fields.
type HistoryEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	ActionType ActionType `json:"action_type"`
	FileName   string     `json:"file_name,omitempty"`
	Prediction string     `json:"prediction,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
	NewsTitle  string     `json:"news_title,omitempty"`
	NewsURL    string     `json:"news_url,omitempty"`
	CreatedAt  time.Time  `json:"timestamp"`
}
