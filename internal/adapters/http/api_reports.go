package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) createReport(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		AnalysisID     string  `json:"analysis_id"`
		FileName       string  `json:"file_name"`
		Prediction     string  `json:"prediction"`
		Confidence     float64 `json:"confidence"`
		FramesAnalyzed int     `json:"frames_analyzed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.services.Reports.Create(r.Context(), caller, &domain.Report{
		AnalysisID:     req.AnalysisID,
		FileName:       req.FileName,
		Prediction:     req.Prediction,
		Confidence:     req.Confidence,
		FramesAnalyzed: req.FramesAnalyzed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (rt *Router) listReports(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	reports, err := rt.services.Reports.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (rt *Router) downloadReportPDF(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	pdf, filename, err := rt.services.Reports.RenderPDF(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.ReportRendered()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
