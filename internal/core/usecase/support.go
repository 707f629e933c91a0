package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type SupportUseCase struct {
	support  ports.SupportRepository
	evidence ports.EvidenceExtractor
	logger   *slog.Logger
}

func NewSupportUseCase(support ports.SupportRepository, evidence ports.EvidenceExtractor, logger *slog.Logger) *SupportUseCase {
	return &SupportUseCase{support: support, evidence: evidence, logger: logger}
}

func (uc *SupportUseCase) CreateExpertRequest(ctx context.Context, caller domain.Principal, request *domain.ExpertRequest) (*domain.ExpertRequest, error) {
	if request == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create expert request", errors.New("missing body"))
	}
	if strings.TrimSpace(request.Description) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create expert request", errors.New("description is required"))
	}

	request.ID = uuid.NewString()
	request.UserID = caller.UserID
	if strings.TrimSpace(request.Name) == "" {
		request.Name = callerDisplayName(caller)
	}
	if strings.TrimSpace(request.Email) == "" {
		request.Email = caller.Email
	}
	request.Email = normalizeEmail(request.Email)
	request.Status = domain.TicketPending
	request.CreatedAt = time.Now().UTC()

	if err := uc.support.CreateExpertRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("create expert request: %w", err)
	}
	return request, nil
}

func (uc *SupportUseCase) CreateComplaint(ctx context.Context, caller domain.Principal, complaint *domain.Complaint) (*domain.Complaint, error) {
	if complaint == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create complaint", errors.New("missing body"))
	}
	if strings.TrimSpace(complaint.Description) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create complaint", errors.New("description is required"))
	}

	complaint.ID = uuid.NewString()
	complaint.UserID = caller.UserID
	if strings.TrimSpace(complaint.Name) == "" {
		complaint.Name = callerDisplayName(caller)
	}
	if strings.TrimSpace(complaint.Email) == "" {
		complaint.Email = caller.Email
	}
	complaint.Email = normalizeEmail(complaint.Email)
	if strings.TrimSpace(complaint.Type) == "" {
		complaint.Type = "other"
	}
	complaint.Status = domain.TicketPending
	complaint.CreatedAt = time.Now().UTC()

	// PDF evidence gets a searchable excerpt; extraction failures only
	// lose the excerpt, never the complaint.
	if key := complaint.EvidenceFile; key != "" && strings.EqualFold(filepath.Ext(key), ".pdf") {
		excerpt, err := uc.evidence.Excerpt(ctx, key)
		if err != nil {
			uc.logger.Warn("evidence_excerpt_failed", "complaint_id", complaint.ID, "error", err)
		} else {
			complaint.EvidenceExcerpt = excerpt
		}
	}

	if err := uc.support.CreateComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return complaint, nil
}

// TrackComplaint looks up by ticket id, falling back to the latest
// complaint for the given email.
func (uc *SupportUseCase) TrackComplaint(ctx context.Context, id, email string) (*domain.Complaint, error) {
	id = strings.TrimSpace(id)
	email = normalizeEmail(email)
	if id == "" && email == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "track complaint", errors.New("ticket id or email is required"))
	}

	if id != "" {
		complaint, err := uc.support.GetComplaintByID(ctx, id)
		if err == nil {
			return complaint, nil
		}
		if !domain.IsKind(err, domain.ErrNotFound) || email == "" {
			return nil, fmt.Errorf("fetch complaint: %w", err)
		}
	}

	complaint, err := uc.support.LatestComplaintByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch complaint by email: %w", err)
	}
	return complaint, nil
}

// Subscribe is idempotent: an already-active signup reports created=false.
func (uc *SupportUseCase) Subscribe(ctx context.Context, caller domain.Principal, email string) (bool, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return false, err
	}

	active, err := uc.support.HasActiveSubscription(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	if active {
		return false, nil
	}

	sub := &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.support.CreateSubscription(ctx, sub); err != nil {
		return false, fmt.Errorf("create subscription: %w", err)
	}
	return true, nil
}
