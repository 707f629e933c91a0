package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO history (id, user_id, action_type, file_name, prediction, confidence, news_title, news_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, entry.ID, entry.UserID, string(entry.ActionType), entry.FileName, entry.Prediction,
		entry.Confidence, entry.NewsTitle, entry.NewsURL, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, action_type, file_name, prediction, confidence, news_title, news_url, created_at
FROM history
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var action string
		if err := rows.Scan(&entry.ID, &entry.UserID, &action, &entry.FileName, &entry.Prediction,
			&entry.Confidence, &entry.NewsTitle, &entry.NewsURL, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.ActionType = domain.ActionType(action)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return countDeleted(result), nil
}

func (r *HistoryRepository) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return countDeleted(result), nil
}
