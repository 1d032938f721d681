package rest

import (
	"net/http"

	"storefront-be/internal/category"
)

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	limit, page, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, total, err := h.svc.Categories.GetCategories(r.Context(), queryString(r, "search"), limit, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, TotalCount: total})
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req category.CreateCategoryInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Categories.AddCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req category.UpdateCategoryInput
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Categories.UpdateCategory(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Categories.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
