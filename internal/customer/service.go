package customer

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/access"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetMe(ctx context.Context) (*Customer, error)
	UpdateMe(ctx context.Context, input UpdateProfileInput) (*Customer, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GetMe(ctx context.Context) (*Customer, error) {
	caller, err := access.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUserID(ctx, caller.UserID)
}

func (s *service) UpdateMe(ctx context.Context, input UpdateProfileInput) (*Customer, error) {
	caller, err := access.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMe"),
	)

	var birth *time.Time
	if input.BirthDate != nil && *input.BirthDate != "" {
		t, err := time.Parse(dateLayout, *input.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		if t.After(s.now()) {
			return nil, ErrFutureBirthDate
		}
		birth = &t
	}

	if a := input.Address; a != nil {
		a.State = strings.TrimSpace(a.State)
		a.City = strings.TrimSpace(a.City)
		a.Street = strings.TrimSpace(a.Street)
		if a.State == "" || a.City == "" || a.Street == "" {
			return nil, ErrInvalidAddress
		}
		if a.Number < 0 {
			return nil, ErrInvalidNumber
		}
	}

	c, err := s.repo.UpdateProfile(ctx, caller.UserID, strings.TrimSpace(input.Phone), birth, input.Address)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	return c, nil
}
