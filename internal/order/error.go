package order

import "storefront-be/internal/apperr"

var (
	ErrOrderNotFound = apperr.NotFound("order not found")
	ErrCartNotFound  = apperr.Validation("cart_id", "no cart with this id")
	ErrCartEmpty     = apperr.Validation("cart_id", "cart is empty")
	ErrInvalidCartID = apperr.Validation("cart_id", "must be a valid cart id")
	ErrInvalidStatus = apperr.Validation("status", "must be one of unpaid, paid, canceled")
)
