package rest

import (
	"net/http"

	"storefront-be/internal/cart"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// cartIDParam treats a malformed cart id like an unknown one.
func cartIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, cart.ErrCartNotFound
	}
	return id, nil
}

func (h *Handler) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Carts.CreateCart(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Carts.GetCart(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Carts.DeleteCart(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cart.AddItemInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Carts.AddItem(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleGetCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := pathInt64(r, "item_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Carts.GetItem(r.Context(), id, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := pathInt64(r, "item_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cart.UpdateItemInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Carts.UpdateItem(r.Context(), id, itemID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := cartIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := pathInt64(r, "item_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Carts.RemoveItem(r.Context(), id, itemID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
