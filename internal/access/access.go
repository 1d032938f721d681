// Package access resolves the caller from a request context and applies the
// role checks shared by every handler.
package access

import (
	"context"

	"storefront-be/internal/apperr"
	"storefront-be/internal/utils"
)

// Caller is the identity attached to a request. Zero value means anonymous.
type Caller struct {
	UserID  uint
	Email   string
	IsStaff bool
}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

func FromContext(ctx context.Context) Caller {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Caller{}
	}
	return Caller{
		UserID:  id,
		Email:   utils.GetUserEmailFromContext(ctx),
		IsStaff: utils.IsStaffFromContext(ctx),
	}
}

func RequireAuthenticated(ctx context.Context) (Caller, error) {
	c := FromContext(ctx)
	if !c.Authenticated() {
		return c, apperr.Unauthenticated("authentication required")
	}
	return c, nil
}

func RequireStaff(ctx context.Context) (Caller, error) {
	c, err := RequireAuthenticated(ctx)
	if err != nil {
		return c, err
	}
	if !c.IsStaff {
		return c, apperr.Forbidden()
	}
	return c, nil
}

// RequireOwnerOrStaff passes when the caller owns the resource or is staff.
func RequireOwnerOrStaff(ctx context.Context, ownerUserID uint) (Caller, error) {
	c, err := RequireAuthenticated(ctx)
	if err != nil {
		return c, err
	}
	if !c.IsStaff && c.UserID != ownerUserID {
		return c, apperr.Forbidden()
	}
	return c, nil
}
