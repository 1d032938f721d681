package user

import "storefront-be/internal/apperr"

var (
	ErrEmailExists        = apperr.Conflict("email already registered")
	ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")
	ErrInvalidEmail       = apperr.Validation("email", "must be a valid email address")
	ErrWeakPassword       = apperr.Validation("password", "must be between 8 and 72 characters")
)
