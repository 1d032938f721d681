package rest

import (
	"net/http"

	"storefront-be/internal/comment"
)

type moderateCommentRequest struct {
	Status comment.Status `json:"status" validate:"required"`
}

// handleListComments serves the public, approved-only projection.
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.svc.Comments.GetApproved(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req comment.CreateCommentInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Comments.Create(r.Context(), productID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleAdminComments(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.svc.Comments.GetAll(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *Handler) handleModerateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req moderateCommentRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Comments.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}
