package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type HistoryUseCase struct {
	history ports.HistoryRepository
}

func NewHistoryUseCase(history ports.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{history: history}
}

func (uc *HistoryUseCase) Record(ctx context.Context, caller domain.Principal, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	if entry == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "record history", errors.New("missing body"))
	}
	if !entry.ActionType.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "record history",
			fmt.Errorf("unknown action_type %q", entry.ActionType))
	}
	switch entry.ActionType {
	case domain.ActionScan:
		if strings.TrimSpace(entry.FileName) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "record history", errors.New("scan entries require file_name"))
		}
	case domain.ActionNewsView:
		if strings.TrimSpace(entry.NewsTitle) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "record history", errors.New("news_view entries require news_title"))
		}
	}

	entry.ID = uuid.NewString()
	entry.UserID = caller.UserID
	entry.CreatedAt = time.Now().UTC()

	if err := uc.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}
	return entry, nil
}

func (uc *HistoryUseCase) List(ctx context.Context, caller domain.Principal) ([]domain.HistoryEntry, error) {
	entries, err := uc.history.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
