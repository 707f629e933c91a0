package httpadapter

import (
	"net/http"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) createExpertRequest(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		FileReference string `json:"file_reference"`
		Description   string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	request, err := rt.services.Support.CreateExpertRequest(r.Context(), caller, &domain.ExpertRequest{
		FileReference: req.FileReference,
		Description:   req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (rt *Router) createComplaint(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		Type         string `json:"type"`
		Description  string `json:"description"`
		EvidenceFile string `json:"evidence_file"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	complaint, err := rt.services.Support.CreateComplaint(r.Context(), caller, &domain.Complaint{
		Type:         req.Type,
		Description:  req.Description,
		EvidenceFile: req.EvidenceFile,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, complaint)
}

func (rt *Router) trackComplaint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	complaint, err := rt.services.Support.TrackComplaint(r.Context(), q.Get("id"), q.Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaint)
}

func (rt *Router) subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	// Works both logged-in and anonymous; the bearer token is optional here.
	var caller domain.Principal
	if token := bearerToken(r); token != "" {
		if principal, err := rt.services.Auth.Verify(r.Context(), token); err == nil {
			caller = principal
		}
	}

	created, err := rt.services.Support.Subscribe(r.Context(), caller, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"subscribed": true, "created": created})
}
