package comment

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// ProductChecker reports whether a product exists.
type ProductChecker interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	GetApproved(ctx context.Context, productID int64) ([]*Comment, error)
	GetAll(ctx context.Context, productID int64) ([]*Comment, error)
	Create(ctx context.Context, productID int64, input CreateCommentInput) (*Comment, error)
	SetStatus(ctx context.Context, id int64, status Status) (*Comment, error)
}

type service struct {
	repo     Repository
	products ProductChecker
}

func NewService(repo Repository, products ProductChecker) Service {
	return &service{repo: repo, products: products}
}

func (s *service) ensureProduct(ctx context.Context, productID int64) error {
	ok, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// GetApproved is the public projection: approved comments only.
func (s *service) GetApproved(ctx context.Context, productID int64) ([]*Comment, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	approved := StatusApproved
	return s.repo.GetByProduct(ctx, productID, &approved)
}

func (s *service) GetAll(ctx context.Context, productID int64) ([]*Comment, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByProduct(ctx, productID, nil)
}

func (s *service) Create(ctx context.Context, productID int64, input CreateCommentInput) (*Comment, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Body = strings.TrimSpace(input.Body)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Body == "" {
		return nil, ErrBodyRequired
	}

	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, productID, input)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("comment submitted for moderation",
		zap.String("layer", "service"),
		zap.Int64("comment_id", c.ID),
		zap.Int64("product_id", productID),
	)
	return c, nil
}

// SetStatus moves a comment to any status; no transition order is enforced.
func (s *service) SetStatus(ctx context.Context, id int64, status Status) (*Comment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("comment moderated",
		zap.String("layer", "service"),
		zap.Int64("comment_id", id),
		zap.String("status", string(status)),
	)
	return c, nil
}
