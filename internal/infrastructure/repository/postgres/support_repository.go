package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type SupportRepository struct {
	db *sql.DB
}

func NewSupportRepository(db *sql.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

func (r *SupportRepository) CreateExpertRequest(ctx context.Context, request *domain.ExpertRequest) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO expert_requests (id, user_id, name, email, file_reference, description, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, request.ID, request.UserID, request.Name, request.Email, request.FileReference,
		request.Description, string(request.Status), request.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expert request: %w", err)
	}
	return nil
}

func (r *SupportRepository) CreateComplaint(ctx context.Context, complaint *domain.Complaint) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO complaints (id, user_id, name, email, type, description, evidence_file, evidence_excerpt, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, complaint.ID, complaint.UserID, complaint.Name, complaint.Email, complaint.Type,
		complaint.Description, complaint.EvidenceFile, complaint.EvidenceExcerpt,
		string(complaint.Status), complaint.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

func (r *SupportRepository) GetComplaintByID(ctx context.Context, id string) (*domain.Complaint, error) {
	return r.scanComplaint(r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, email, type, description, evidence_file, evidence_excerpt, status, created_at
FROM complaints WHERE id = $1
`, id))
}

func (r *SupportRepository) LatestComplaintByEmail(ctx context.Context, email string) (*domain.Complaint, error) {
	return r.scanComplaint(r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, email, type, description, evidence_file, evidence_excerpt, status, created_at
FROM complaints WHERE email = $1
ORDER BY created_at DESC
LIMIT 1
`, email))
}

func (r *SupportRepository) scanComplaint(row *sql.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	var status string
	err := row.Scan(&complaint.ID, &complaint.UserID, &complaint.Name, &complaint.Email,
		&complaint.Type, &complaint.Description, &complaint.EvidenceFile, &complaint.EvidenceExcerpt,
		&status, &complaint.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch complaint", err)
		}
		return nil, fmt.Errorf("scan complaint: %w", err)
	}
	complaint.Status = domain.TicketStatus(status)
	return &complaint, nil
}

func (r *SupportRepository) HasActiveSubscription(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(SELECT 1 FROM subscriptions WHERE email = $1 AND is_active)
`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return exists, nil
}

func (r *SupportRepository) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO subscriptions (id, user_id, email, is_active, created_at)
VALUES ($1,$2,$3,$4,$5)
`, sub.ID, sub.UserID, sub.Email, sub.IsActive, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}
