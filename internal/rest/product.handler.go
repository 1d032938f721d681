package rest

import (
	"net/http"

	"storefront-be/internal/product"
)

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	opts := product.ProductQueryOptions{
		Search:   queryString(r, "search"),
		Ordering: r.URL.Query().Get("ordering"),
	}

	var err error
	if opts.CategoryID, err = queryInt64(r, "category_id"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.InventoryGT, err = queryInt(r, "inventory_gt"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.InventoryLT, err = queryInt(r, "inventory_lt"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.Limit, opts.Page, err = pageParams(r); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Products.GetList(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Products.GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Products.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req product.UpdateProductInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Products.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.svc.Products.GetDiscounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, discounts)
}

func (h *Handler) handleCreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req product.CreateDiscountInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.svc.Products.CreateDiscount(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleAttachDiscount(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	discountID, err := pathInt64(r, "discount_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Products.AttachDiscount(r.Context(), productID, discountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
