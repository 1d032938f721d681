package rest

import (
	"net/http"

	"storefront-be/internal/customer"
)

func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Customers.GetMe(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req customer.UpdateProfileInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Customers.UpdateMe(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}
