package product

import (
	"context"
	"strings"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	GetList(ctx context.Context, opts ProductQueryOptions) (*ProductListResult, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	ProductExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error

	CreateDiscount(ctx context.Context, input CreateDiscountInput) (*Discount, error)
	GetDiscounts(ctx context.Context) ([]*Discount, error)
	AttachDiscount(ctx context.Context, productID, discountID int64) (*Product, error)

	GetAdminList(ctx context.Context, opts AdminProductQuery) ([]*AdminProduct, int64, error)
	ClearInventory(ctx context.Context, ids []int64) (int64, error)
}

type service struct {
	repo    Repository
	taxRate decimal.Decimal
}

func NewService(repo Repository, taxRate decimal.Decimal) Service {
	return &service{repo: repo, taxRate: taxRate}
}

func (s *service) withTax(products ...*Product) {
	for _, p := range products {
		p.PriceAfterTax = PriceAfterTax(p.UnitPrice, s.taxRate)
	}
}

func (s *service) GetList(ctx context.Context, opts ProductQueryOptions) (*ProductListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetList"),
	)

	start := time.Now()

	if _, ok := orderClause(opts.Ordering); !ok {
		return nil, ErrInvalidOrdering
	}

	log.Debug("get product list requested",
		zap.Any("filters", map[string]any{
			"search":       utils.PtrString(opts.Search),
			"category_id":  opts.CategoryID,
			"inventory_gt": opts.InventoryGT,
			"inventory_lt": opts.InventoryLT,
			"ordering":     opts.Ordering,
		}),
	)

	products, total, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	s.withTax(products...)

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &ProductListResult{Items: products, TotalCount: total}, nil
}

func (s *service) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.withTax(p)
	return p, nil
}

func (s *service) ProductExists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.CategoryID <= 0 {
		return nil, ErrCategoryRequired
	}
	if !ValidUnitPrice(input.UnitPrice) {
		return nil, ErrInvalidUnitPrice
	}
	if input.Inventory < 0 {
		return nil, ErrNegativeInventory
	}
	if strings.TrimSpace(input.Slug) == "" {
		input.Slug = utils.Slugify(input.Name)
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, err
	}

	s.withTax(p)
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	// Validate only provided fields
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		input.Name = &trimmed
	}
	if input.UnitPrice != nil && !ValidUnitPrice(*input.UnitPrice) {
		return nil, ErrInvalidUnitPrice
	}
	if input.Inventory != nil && *input.Inventory < 0 {
		return nil, ErrNegativeInventory
	}
	if input.CategoryID != nil && *input.CategoryID <= 0 {
		return nil, ErrCategoryRequired
	}

	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update product",
			zap.String("layer", "service"),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	s.withTax(p)
	return p, nil
}

// Delete refuses while any order item references the product.
func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("product_id", id),
	)

	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountOrderItems(ctx, id)
	if err != nil {
		log.Error("failed to count order items", zap.Error(err))
		return err
	}
	if n > 0 {
		log.Info("delete blocked", zap.Int64("order_items", n))
		return errProductInUse(n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("product deleted")
	return nil
}

func (s *service) CreateDiscount(ctx context.Context, input CreateDiscountInput) (*Discount, error) {
	if !validDiscount(input.Discount) {
		return nil, ErrInvalidDiscount
	}
	return s.repo.CreateDiscount(ctx, input)
}

func (s *service) GetDiscounts(ctx context.Context) ([]*Discount, error) {
	return s.repo.GetDiscounts(ctx)
}

func (s *service) AttachDiscount(ctx context.Context, productID, discountID int64) (*Product, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.AttachDiscount(ctx, productID, discountID); err != nil {
		return nil, err
	}
	return s.GetProductByID(ctx, productID)
}

func (s *service) GetAdminList(ctx context.Context, opts AdminProductQuery) ([]*AdminProduct, int64, error) {
	if opts.InventoryLevel != "" {
		if _, ok := levelCondition(opts.InventoryLevel); !ok {
			return nil, 0, ErrInvalidLevel
		}
	}
	return s.repo.GetAdminList(ctx, opts)
}

func (s *service) ClearInventory(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	n, err := s.repo.ClearInventory(ctx, ids)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("inventory cleared",
		zap.String("layer", "service"),
		zap.Int64s("product_ids", ids),
		zap.Int64("updated", n),
	)
	return n, nil
}
