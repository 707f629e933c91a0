package httpadapter

import (
	"net/http"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) recordHistory(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		ActionType string  `json:"action_type"`
		FileName   string  `json:"file_name"`
		Prediction string  `json:"prediction"`
		Confidence float64 `json:"confidence"`
		NewsTitle  string  `json:"news_title"`
		NewsURL    string  `json:"news_url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	entry, err := rt.services.History.Record(r.Context(), caller, &domain.HistoryEntry{
		ActionType: domain.ActionType(req.ActionType),
		FileName:   req.FileName,
		Prediction: req.Prediction,
		Confidence: req.Confidence,
		NewsTitle:  req.NewsTitle,
		NewsURL:    req.NewsURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (rt *Router) listHistory(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	entries, err := rt.services.History.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (rt *Router) dashboard(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	summary, err := rt.services.Dashboard.Summary(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (rt *Router) listNotifications(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	notifications, err := rt.services.Dashboard.Notifications(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (rt *Router) markNotificationRead(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if err := rt.services.Dashboard.MarkNotificationRead(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
