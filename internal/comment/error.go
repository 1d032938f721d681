package comment

import "storefront-be/internal/apperr"

var (
	ErrCommentNotFound = apperr.NotFound("comment not found")
	ErrProductNotFound = apperr.NotFound("product not found")
	ErrNameRequired    = apperr.Validation("name", "name is required")
	ErrBodyRequired    = apperr.Validation("body", "body is required")
	ErrInvalidStatus   = apperr.Validation("status", "must be one of waiting, approved, not_approved")
)
