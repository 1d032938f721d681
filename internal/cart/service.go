package cart

import (
	"context"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for anonymous carts. Holding the cart
// id is the only credential a cart needs.
type Service interface {
	CreateCart(ctx context.Context) (*Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, cartID uuid.UUID, input AddItemInput) (*CartItem, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*CartItem, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, input UpdateItemInput) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
}

type service struct {
	repo    Repository
	metrics *metrics.Registry
	newID   func() uuid.UUID
}

func NewService(repo Repository, reg *metrics.Registry) Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &service{repo: repo, metrics: reg, newID: uuid.New}
}

func (s *service) CreateCart(ctx context.Context) (*Cart, error) {
	c, err := s.repo.CreateCart(ctx, s.newID())
	if err != nil {
		return nil, err
	}
	c.TotalPrice = decimal.Zero
	return c, nil
}

func (s *service) GetCart(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c, err := s.repo.GetCart(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTotals(c)
	return c, nil
}

func (s *service) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCart(ctx, id)
}

// AddItem merges the quantity into an existing line for the same product,
// so a cart never holds two lines for one product.
func (s *service) AddItem(ctx context.Context, cartID uuid.UUID, input AddItemInput) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
	)

	if !validQuantity(input.Quantity) {
		return nil, ErrInvalidQuantity
	}
	if input.ProductID <= 0 {
		return nil, ErrProductNotFound
	}

	itemID, err := s.repo.AddItem(ctx, cartID, input.ProductID, input.Quantity)
	if err != nil {
		log.Warn("add cart item failed", zap.Error(err))
		return nil, err
	}
	s.metrics.CartItemsAdded.Inc()

	return s.GetItem(ctx, cartID, itemID)
}

func (s *service) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*CartItem, error) {
	item, err := s.repo.GetItem(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	item.TotalPrice = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, input UpdateItemInput) (*CartItem, error) {
	if !validQuantity(input.Quantity) {
		return nil, ErrInvalidQuantity
	}
	if err := s.repo.UpdateItemQuantity(ctx, cartID, itemID, input.Quantity); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, cartID, itemID)
}

func (s *service) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return s.repo.RemoveItem(ctx, cartID, itemID)
}
