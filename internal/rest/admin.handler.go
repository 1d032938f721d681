package rest

import (
	"net/http"

	"storefront-be/internal/product"
)

type clearInventoryRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

func (h *Handler) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	limit, page, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, total, err := h.svc.Products.GetAdminList(r.Context(), product.AdminProductQuery{
		Search:         queryString(r, "search"),
		InventoryLevel: r.URL.Query().Get("inventory_level"),
		Limit:          limit,
		Page:           page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, TotalCount: total})
}

func (h *Handler) handleClearInventory(w http.ResponseWriter, r *http.Request) {
	var req clearInventoryRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.svc.Products.ClearInventory(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

func (h *Handler) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	limit, page, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := h.svc.Orders.GetAdminOrders(r.Context(), limit, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Metrics.Snapshot())
}
