package customer

import "storefront-be/internal/apperr"

var (
	ErrInvalidBirthDate = apperr.Validation("birth_date", "must be a date formatted as YYYY-MM-DD")
	ErrFutureBirthDate  = apperr.Validation("birth_date", "must not be in the future")
	ErrInvalidAddress   = apperr.Validation("address", "state, city and street are required")
	ErrInvalidNumber    = apperr.Validation("address.number", "must not be negative")
)
