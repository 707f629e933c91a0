package httpadapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) adminListUsers(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	users, err := rt.services.Admin.ListUsers(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (rt *Router) adminUserDetail(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	profile, analyses, reports, err := rt.services.Admin.UserDetail(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     profile,
		"analyses": analyses,
		"reports":  reports,
	})
}

func (rt *Router) adminResetUser(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	counts, err := rt.services.Admin.ResetUser(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "deleted": counts})
}

func (rt *Router) adminDeleteUser(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if err := rt.services.Admin.DeleteUser(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func reportFilterFromQuery(r *http.Request) domain.ReportFilter {
	q := r.URL.Query()
	return domain.ReportFilter{
		Result:   q.Get("result"),
		UserID:   q.Get("user_id"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}
}

func (rt *Router) adminListReports(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	reports, stats, err := rt.services.Admin.ListReports(r.Context(), caller, reportFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports":    reports,
		"statistics": stats,
	})
}

func (rt *Router) adminDeleteReport(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if err := rt.services.Admin.DeleteReport(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (rt *Router) adminExportReports(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	workbook, err := rt.services.Admin.ExportReports(r.Context(), caller, reportFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("reports_export_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) adminResetAll(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	counts, err := rt.services.Admin.ResetAll(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "deleted": counts})
}

func (rt *Router) adminLogs(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	logs, err := rt.services.Admin.Logs(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
