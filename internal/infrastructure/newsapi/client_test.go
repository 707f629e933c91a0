package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestEverythingForwardsQueryAndKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "key-123" {
			t.Fatalf("expected api key header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "deepfake" || q.Get("language") != "en" || q.Get("pageSize") != "20" {
			t.Fatalf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{"title": "Deepfake law passes", "url": "https://example.com/a"}]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	result, err := client.Everything(context.Background(), "key-123", domain.NewsQuery{
		Query:    "deepfake",
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("Everything() error = %v", err)
	}
	if result.TotalResults != 1 || len(result.Articles) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Articles[0].Title != "Deepfake law passes" {
		t.Fatalf("unexpected article %+v", result.Articles[0])
	}
}

func TestEverythingMapsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Everything(context.Background(), "bad-key", domain.NewsQuery{Query: "x", Language: "en", SortBy: "publishedAt", PageSize: 1})
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestEverythingWrapsUpstreamOutage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Everything(context.Background(), "key", domain.NewsQuery{Query: "x", Language: "en", SortBy: "publishedAt", PageSize: 1})
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestEverythingRejectsUpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "parameter invalid"}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Everything(context.Background(), "key", domain.NewsQuery{Query: "x", Language: "en", SortBy: "publishedAt", PageSize: 1})
	if err == nil {
		t.Fatalf("expected error for upstream error payload")
	}
}
