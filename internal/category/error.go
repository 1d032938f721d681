package category

import (
	"fmt"

	"storefront-be/internal/apperr"
)

var (
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrTitleRequired    = apperr.Validation("title", "title is required")
	ErrTopProductAbsent = apperr.Validation("top_product_id", "no product with this id")
	ErrCategoryInUse    = apperr.Conflict("cannot delete category: products still belong to it")
)

func errCategoryInUse(products int64) error {
	return apperr.Conflict(fmt.Sprintf("cannot delete category: %d product(s) still belong to it", products))
}
