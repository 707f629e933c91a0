package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type AdminLogRepository struct {
	db *sql.DB
}

func NewAdminLogRepository(db *sql.DB) *AdminLogRepository {
	return &AdminLogRepository{db: db}
}

func (r *AdminLogRepository) Create(ctx context.Context, entry *domain.AdminLog) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO admin_logs (id, admin_id, admin_email, action, details, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, entry.ID, entry.AdminID, entry.AdminEmail, entry.Action, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert admin log: %w", err)
	}
	return nil
}

func (r *AdminLogRepository) List(ctx context.Context, limit int) ([]domain.AdminLog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, admin_id, admin_email, action, details, created_at
FROM admin_logs
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminLog
	for rows.Next() {
		var entry domain.AdminLog
		if err := rows.Scan(&entry.ID, &entry.AdminID, &entry.AdminEmail, &entry.Action,
			&entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin log: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
