package httpadapter

import (
	"net/http"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

// multipartMemoryLimit bounds how much of the upload is buffered in memory;
// the remainder spills to temp files.
const multipartMemoryLimit = 32 << 20

func (rt *Router) submitAnalysis(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if rt.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadSize)
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "parse upload", err))
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'video' is required"})
		return
	}
	defer file.Close()

	analysis, err := rt.services.Analyses.Submit(r.Context(), caller, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.AnalysisSubmitted()
	}
	writeJSON(w, http.StatusAccepted, analysis)
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	analysis, err := rt.services.Analyses.GetByID(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) listAnalyses(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	analyses, err := rt.services.Analyses.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}
