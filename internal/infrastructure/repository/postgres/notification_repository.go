package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, notification.ID, notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.IsRead, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's own notifications plus broadcasts
// (empty user_id), newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, message, type, is_read, created_at
FROM notifications
WHERE user_id = $1 OR user_id = ''
ORDER BY created_at DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE notifications SET is_read = TRUE WHERE id = $1 AND (user_id = $2 OR user_id = '')
`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "mark notification read", sql.ErrNoRows)
	}
	return nil
}

func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return countDeleted(result), nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications`)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return countDeleted(result), nil
}
