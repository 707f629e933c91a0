package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

const analysisColumns = `id, user_id, file_name, storage_path, status, prediction,
confidence, fake_probability, real_probability, frames_analyzed,
processing_seconds, error_message, created_at, updated_at`

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO analyses (`+analysisColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`,
		analysis.ID, analysis.UserID, analysis.FileName, analysis.StoragePath, string(analysis.Status),
		analysis.Prediction, analysis.Confidence, analysis.FakeProbability, analysis.RealProbability,
		analysis.FramesAnalyzed, analysis.ProcessingSeconds, analysis.Error, analysis.CreatedAt, analysis.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.Analysis, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)
	analysis, err := scanAnalysis(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch analysis", err)
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	return analysis, nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string) ([]domain.Analysis, error) {
	return r.list(ctx, `
SELECT `+analysisColumns+` FROM analyses WHERE user_id = $1 ORDER BY created_at DESC
`, userID)
}

func (r *AnalysisRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Analysis, error) {
	if userID == "" {
		return r.list(ctx, `
SELECT `+analysisColumns+` FROM analyses ORDER BY created_at DESC LIMIT $1
`, limit)
	}
	return r.list(ctx, `
SELECT `+analysisColumns+` FROM analyses WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
`, userID, limit)
}

func (r *AnalysisRepository) list(ctx context.Context, query string, args ...any) ([]domain.Analysis, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []domain.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, *analysis)
	}
	return out, rows.Err()
}

func scanAnalysis(scan func(...any) error) (*domain.Analysis, error) {
	var analysis domain.Analysis
	var status string
	err := scan(
		&analysis.ID, &analysis.UserID, &analysis.FileName, &analysis.StoragePath, &status,
		&analysis.Prediction, &analysis.Confidence, &analysis.FakeProbability, &analysis.RealProbability,
		&analysis.FramesAnalyzed, &analysis.ProcessingSeconds, &analysis.Error,
		&analysis.CreatedAt, &analysis.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	analysis.Status = domain.AnalysisStatus(status)
	return &analysis, nil
}

func (r *AnalysisRepository) UpdateStatus(ctx context.Context, id string, status domain.AnalysisStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE analyses SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update analysis status: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "update analysis status", sql.ErrNoRows)
	}
	return nil
}

func (r *AnalysisRepository) SaveVerdict(ctx context.Context, id string, verdict domain.Verdict, processingSeconds float64) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE analyses SET
	status = $2,
	prediction = $3,
	confidence = $4,
	fake_probability = $5,
	real_probability = $6,
	frames_analyzed = $7,
	processing_seconds = $8,
	error_message = '',
	updated_at = $9
WHERE id = $1
`, id, string(domain.AnalysisCompleted), verdict.Prediction, verdict.Confidence,
		verdict.FakeProbability, verdict.RealProbability, verdict.FramesAnalyzed,
		processingSeconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "save verdict", sql.ErrNoRows)
	}
	return nil
}

func (r *AnalysisRepository) Summary(ctx context.Context, userID string) (domain.AnalysisSummary, error) {
	query := `
SELECT COUNT(*),
	COUNT(*) FILTER (WHERE prediction = 'FAKE'),
	COALESCE(AVG(confidence), 0),
	COALESCE(AVG(processing_seconds), 0)
FROM analyses
WHERE status = 'completed'`
	args := []any{}
	if userID != "" {
		query += ` AND user_id = $1`
		args = append(args, userID)
	}

	var summary domain.AnalysisSummary
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalAnalyses, &summary.DeepfakesDetected,
		&summary.AccuracyRate, &summary.AvgProcessingTime,
	)
	if err != nil {
		return domain.AnalysisSummary{}, fmt.Errorf("aggregate analyses: %w", err)
	}
	return summary, nil
}

func (r *AnalysisRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete analyses: %w", err)
	}
	return countDeleted(result), nil
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("delete analyses: %w", err)
	}
	return countDeleted(result), nil
}
