package cart

import "storefront-be/internal/apperr"

var (
	ErrCartNotFound     = apperr.NotFound("cart not found")
	ErrCartItemNotFound = apperr.NotFound("cart item not found")
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrInvalidQuantity  = apperr.Validation("quantity", "must be between 1 and 32767")
)
