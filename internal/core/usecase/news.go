package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

const (
	newsDefaultQuery    = "deepfake OR \"synthetic media\" OR \"AI generated\""
	newsDefaultPageSize = 20
	newsMaxPageSize     = 100
)

type NewsUseCase struct {
	provider ports.NewsProvider
}

func NewNewsUseCase(provider ports.NewsProvider) *NewsUseCase {
	return &NewsUseCase{provider: provider}
}

// Fetch proxies newsapi.org so the SPA never ships the upstream key.
func (uc *NewsUseCase) Fetch(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "fetch news", errors.New("api key is required"))
	}

	if strings.TrimSpace(query.Query) == "" {
		query.Query = newsDefaultQuery
	}
	if query.Language == "" {
		query.Language = "en"
	}
	if query.SortBy == "" {
		query.SortBy = "publishedAt"
	}
	if query.PageSize <= 0 {
		query.PageSize = newsDefaultPageSize
	}
	if query.PageSize > newsMaxPageSize {
		query.PageSize = newsMaxPageSize
	}

	result, err := uc.provider.Everything(ctx, apiKey, query)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	return result, nil
}
