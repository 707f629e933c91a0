package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

// Video container formats the detector's frame sampler can decode.
var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
}

type SubmitAnalysisUseCase struct {
	analyses ports.AnalysisRepository
	storage  ports.ObjectStorage
	queue    ports.MessageQueue
}

func NewSubmitAnalysisUseCase(
	analyses ports.AnalysisRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *SubmitAnalysisUseCase {
	return &SubmitAnalysisUseCase{
		analyses: analyses,
		storage:  storage,
		queue:    queue,
	}
}

// Submit stores the upload, records a pending analysis and enqueues it for
// the worker. The caller polls GetByID for the verdict.
func (uc *SubmitAnalysisUseCase) Submit(
	ctx context.Context,
	caller domain.Principal,
	filename string,
	body io.Reader,
) (*domain.Analysis, error) {
	if err := validateVideoFilename(filename); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	analysis := &domain.Analysis{
		ID:          id,
		UserID:      caller.UserID,
		FileName:    filepath.Base(filename),
		StoragePath: storageKey,
		Status:      domain.AnalysisPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.analyses.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("create analysis: %w", err)
	}

	if err := uc.queue.PublishAnalysisSubmitted(ctx, analysis.ID); err != nil {
		if markErr := uc.analyses.UpdateStatus(ctx, analysis.ID, domain.AnalysisFailed, "enqueue failed"); markErr != nil {
			return nil, fmt.Errorf("publish analysis event: %w; mark failed: %v", err, markErr)
		}
		return nil, domain.WrapError(domain.ErrTemporary, "publish analysis event", err)
	}

	return analysis, nil
}

func (uc *SubmitAnalysisUseCase) GetByID(ctx context.Context, caller domain.Principal, id string) (*domain.Analysis, error) {
	analysis, err := uc.analyses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch analysis: %w", err)
	}
	if analysis.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.WrapError(domain.ErrForbidden, "fetch analysis", errors.New("not the owner"))
	}
	return analysis, nil
}

func (uc *SubmitAnalysisUseCase) List(ctx context.Context, caller domain.Principal) ([]domain.Analysis, error) {
	analyses, err := uc.analyses.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return analyses, nil
}

func validateVideoFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("filename is required"))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedVideoExtensions[ext] {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload",
			fmt.Errorf("unsupported file type %q, allowed: mp4, avi, mov, webm, mkv", ext))
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "upload.bin"
	}
	return base
}
