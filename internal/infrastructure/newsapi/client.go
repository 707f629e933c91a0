package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/infrastructure/resilience"
)

// Client proxies the newsapi.org /v2/everything endpoint. The caller's key
// is forwarded per request and never stored.
type Client struct {
	endpoint   string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	HTTPClient         *http.Client
	ResilienceExecutor *resilience.Executor
}

func New(endpoint string, options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		executor:   options.ResilienceExecutor,
	}
}

type everythingResponse struct {
	Status       string               `json:"status"`
	Message      string               `json:"message"`
	TotalResults int                  `json:"totalResults"`
	Articles     []domain.NewsArticle `json:"articles"`
}

func (c *Client) Everything(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error) {
	var result *domain.NewsResult
	call := func(ctx context.Context) error {
		r, err := c.fetch(ctx, apiKey, query)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "news.everything", call, classifyNewsError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded(err)
	}
	return result, nil
}

func (c *Client) fetch(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error) {
	params := url.Values{}
	params.Set("q", query.Query)
	params.Set("language", query.Language)
	params.Set("sortBy", query.SortBy)
	params.Set("pageSize", strconv.Itoa(query.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.WrapError(domain.ErrUnauthorized, "news request",
			fmt.Errorf("upstream rejected api key"))
	case resp.StatusCode != http.StatusOK:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &upstreamStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(payload)),
		}
	}

	var parsed everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("upstream status %q: %s", parsed.Status, parsed.Message)
	}

	return &domain.NewsResult{
		Articles:     parsed.Articles,
		TotalResults: parsed.TotalResults,
	}, nil
}

type upstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *upstreamStatusError) Error() string {
	return fmt.Sprintf("news upstream returned status %d: %s", e.StatusCode, e.Body)
}

func classifyNewsError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	if domain.IsKind(err, domain.ErrUnauthorized) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var statusErr *upstreamStatusError
	if errors.As(err, &statusErr) {
		retryable := statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
		return resilience.ErrorClassification{
			Retryable:     retryable,
			RecordFailure: statusErr.StatusCode >= http.StatusInternalServerError,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func wrapTemporaryIfNeeded(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) || domain.IsKind(err, domain.ErrUnauthorized) {
		return err
	}
	if classifyNewsError(err).Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, "fetch news", err)
	}
	return err
}
