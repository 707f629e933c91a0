package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

const reportColumns = `id, user_id, analysis_id, file_name, prediction, confidence,
frames_analyzed, model_version, created_at`

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO reports (`+reportColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, report.ID, report.UserID, report.AnalysisID, report.FileName, report.Prediction,
		report.Confidence, report.FramesAnalyzed, report.ModelVersion, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	var report domain.Report
	err := row.Scan(&report.ID, &report.UserID, &report.AnalysisID, &report.FileName,
		&report.Prediction, &report.Confidence, &report.FramesAnalyzed, &report.ModelVersion, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch report", err)
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return &report, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	return r.list(ctx, `
SELECT `+reportColumns+` FROM reports WHERE user_id = $1 ORDER BY created_at DESC
`, userID)
}

func (r *ReportRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Report, error) {
	return r.list(ctx, `
SELECT `+reportColumns+` FROM reports WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
`, userID, limit)
}

func (r *ReportRepository) list(ctx context.Context, query string, args ...any) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(&report.ID, &report.UserID, &report.AnalysisID, &report.FileName,
			&report.Prediction, &report.Confidence, &report.FramesAnalyzed, &report.ModelVersion, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

// ListFiltered joins the owning account for the admin console. Date bounds
// are inclusive and expected as YYYY-MM-DD.
func (r *ReportRepository) ListFiltered(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportWithUser, error) {
	query := `
SELECT r.id, r.user_id, r.analysis_id, r.file_name, r.prediction, r.confidence,
	r.frames_analyzed, r.model_version, r.created_at, u.email, u.name
FROM reports r
JOIN users u ON u.id = r.user_id`

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Result != "" {
		conditions = append(conditions, "r.prediction = "+arg(filter.Result))
	}
	if filter.UserID != "" {
		conditions = append(conditions, "r.user_id = "+arg(filter.UserID))
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, "r.created_at >= "+arg(filter.DateFrom)+"::date")
	}
	if filter.DateTo != "" {
		conditions = append(conditions, "r.created_at < "+arg(filter.DateTo)+"::date + INTERVAL '1 day'")
	}
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\nORDER BY r.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list filtered reports: %w", err)
	}
	defer rows.Close()

	var out []domain.ReportWithUser
	for rows.Next() {
		var row domain.ReportWithUser
		if err := rows.Scan(&row.ID, &row.UserID, &row.AnalysisID, &row.FileName,
			&row.Prediction, &row.Confidence, &row.FramesAnalyzed, &row.ModelVersion,
			&row.CreatedAt, &row.UserEmail, &row.UserName); err != nil {
			return nil, fmt.Errorf("scan filtered report: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepository) Statistics(ctx context.Context) (domain.ReportStatistics, error) {
	var stats domain.ReportStatistics
	var mostRecent sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*),
	COUNT(*) FILTER (WHERE prediction = 'FAKE'),
	COUNT(*) FILTER (WHERE prediction = 'REAL'),
	COALESCE(AVG(confidence), 0),
	MAX(created_at)
FROM reports
`).Scan(&stats.TotalReports, &stats.FakeReports, &stats.RealReports, &stats.AvgConfidence, &mostRecent)
	if err != nil {
		return domain.ReportStatistics{}, fmt.Errorf("aggregate reports: %w", err)
	}
	if stats.TotalReports > 0 {
		stats.FakePercentage = float64(stats.FakeReports) / float64(stats.TotalReports) * 100
	}
	if mostRecent.Valid {
		stats.MostRecent = mostRecent.Time
	}
	return stats, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete report", sql.ErrNoRows)
	}
	return nil
}

func (r *ReportRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete reports: %w", err)
	}
	return countDeleted(result), nil
}

func (r *ReportRepository) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("delete reports: %w", err)
	}
	return countDeleted(result), nil
}
