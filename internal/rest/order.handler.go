package rest

import (
	"net/http"

	"storefront-be/internal/order"
)

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	limit, page, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	unpaid, err := queryBool(r, "unpaid")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var orders []*order.Order
	if unpaid {
		orders, err = order.GetUnpaidOrders(r.Context(), h.svc.Orders, limit, page)
	} else {
		var status *order.Status
		if raw := queryString(r, "status"); raw != nil {
			s := order.Status(*raw)
			status = &s
		}
		orders, err = h.svc.Orders.GetOrders(r.Context(), status, limit, page)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req order.PlaceOrderInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.Orders.PlaceOrder(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.Orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req order.UpdateOrderInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.Orders.UpdateStatus(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
