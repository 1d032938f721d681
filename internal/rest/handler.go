// Package rest exposes the storefront services over HTTP with chi.
package rest

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/comment"
	"storefront-be/internal/customer"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Users      user.Service
	Categories category.Service
	Products   product.Service
	Comments   comment.Service
	Carts      cart.Service
	Orders     order.Service
	Customers  customer.Service
	Metrics    *metrics.Registry
}

type Handler struct {
	svc      Services
	validate *validator.Validate
}

func NewHandler(svc Services) *Handler {
	if svc.Metrics == nil {
		svc.Metrics = metrics.NewRegistry()
	}
	return &Handler{svc: svc, validate: newValidator()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.handleListCategories)
		r.Get("/{id}", h.handleGetCategory)
		r.Group(func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/", h.handleCreateCategory)
			r.Patch("/{id}", h.handleUpdateCategory)
			r.Delete("/{id}", h.handleDeleteCategory)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.handleListProducts)
		r.Get("/{id}", h.handleGetProduct)
		r.Get("/{id}/comments", h.handleListComments)
		r.Post("/{id}/comments", h.handleCreateComment)
		r.Group(func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/", h.handleCreateProduct)
			r.Patch("/{id}", h.handleUpdateProduct)
			r.Delete("/{id}", h.handleDeleteProduct)
			r.Post("/{id}/discounts/{discount_id}", h.handleAttachDiscount)
		})
	})

	r.Route("/discounts", func(r chi.Router) {
		r.Get("/", h.handleListDiscounts)
		r.With(staffOnly).Post("/", h.handleCreateDiscount)
	})

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.handleCreateCart)
		r.Get("/{id}", h.handleGetCart)
		r.Delete("/{id}", h.handleDeleteCart)
		r.Post("/{id}/items", h.handleAddCartItem)
		r.Get("/{id}/items/{item_id}", h.handleGetCartItem)
		r.Patch("/{id}/items/{item_id}", h.handleUpdateCartItem)
		r.Delete("/{id}/items/{item_id}", h.handleRemoveCartItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.handleListOrders)
		r.Post("/", h.handlePlaceOrder)
		r.Get("/{id}", h.handleGetOrder)
		r.Patch("/{id}", h.handleUpdateOrder)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/me", h.handleGetMe)
		r.Put("/me", h.handleUpdateMe)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(staffOnly)
		r.Get("/products", h.handleAdminProducts)
		r.Post("/products/clear-inventory", h.handleClearInventory)
		r.Get("/products/{id}/comments", h.handleAdminComments)
		r.Patch("/comments/{id}", h.handleModerateComment)
		r.Get("/orders", h.handleAdminOrders)
		r.Get("/metrics", h.handleMetrics)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
