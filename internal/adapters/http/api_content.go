package httpadapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) fetchNews(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get("X-Api-Key")
	if apiKey == "" {
		apiKey = rt.newsAPIKey
	}

	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := rt.services.News.Fetch(r.Context(), apiKey, domain.NewsQuery{
		Query:    q.Get("q"),
		Language: q.Get("language"),
		SortBy:   q.Get("sortBy"),
		PageSize: pageSize,
	})
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.NewsProxyCall("api", "error")
		}
		if isTimeout(err) {
			writeJSON(w, http.StatusGatewayTimeout, map[string]string{"error": "news provider timed out"})
			return
		}
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.NewsProxyCall("api", "ok")
	}
	writeJSON(w, http.StatusOK, result)
}

// isTimeout distinguishes a slow upstream from an unreachable one. The proxy
// answers 504 for the former so clients know the provider, not this API, stalled.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (rt *Router) listBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := rt.services.Content.ListBlogs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs})
}

func (rt *Router) getBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := rt.services.Content.GetBlog(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (rt *Router) listTips(w http.ResponseWriter, r *http.Request) {
	tips, err := rt.services.Content.ListActiveTips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tips": tips})
}
