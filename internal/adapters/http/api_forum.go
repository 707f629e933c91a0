package httpadapter

import (
	"net/http"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func (rt *Router) listForumPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := rt.services.Forum.ListPosts(r.Context(), domain.PostFilter{
		Search: q.Get("search"),
		Topic:  q.Get("topic"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (rt *Router) createForumPost(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		Topic   string `json:"topic"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	post, err := rt.services.Forum.CreatePost(r.Context(), caller, req.Topic, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (rt *Router) likeForumPost(w http.ResponseWriter, r *http.Request, _ domain.Principal) {
	likes, err := rt.services.Forum.LikePost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

func (rt *Router) deleteForumPost(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if err := rt.services.Forum.DeletePost(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (rt *Router) listForumComments(w http.ResponseWriter, r *http.Request) {
	comments, err := rt.services.Forum.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (rt *Router) createForumComment(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	comment, err := rt.services.Forum.CreateComment(r.Context(), caller, r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (rt *Router) deleteForumComment(w http.ResponseWriter, r *http.Request, caller domain.Principal) {
	if err := rt.services.Forum.DeleteComment(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
