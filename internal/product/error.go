package product

import (
	"fmt"

	"storefront-be/internal/apperr"
)

var (
	ErrProductNotFound   = apperr.NotFound("product not found")
	ErrDiscountNotFound  = apperr.NotFound("discount not found")
	ErrNameRequired      = apperr.Validation("name", "name is required")
	ErrCategoryRequired  = apperr.Validation("category_id", "category is required")
	ErrCategoryAbsent    = apperr.Validation("category_id", "no category with this id")
	ErrInvalidUnitPrice  = apperr.Validation("unit_price", "must be between 0 and 9999.99 with at most 2 decimal places")
	ErrNegativeInventory = apperr.Validation("inventory", "must not be negative")
	ErrInvalidDiscount   = apperr.Validation("discount", "must be between 0 and 100")
	ErrInvalidOrdering   = apperr.Validation("ordering", "unsupported ordering")
	ErrInvalidLevel      = apperr.Validation("inventory_level", "must be one of high, medium, ok")
	ErrProductInUse      = apperr.Conflict("cannot delete product: order items still reference it")
	ErrNoIDs             = apperr.Validation("ids", "at least one product id is required")
)

func errProductInUse(items int64) error {
	return apperr.Conflict(fmt.Sprintf("cannot delete product: referenced by %d order item(s)", items))
}
