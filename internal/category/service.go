package category

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	AddCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, total, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, 0, err
	}

	if len(categories) == 0 {
		return []*Category{}, total, nil
	}

	log.Debug("GetCategories success", zap.Int("count", len(categories)))
	return categories, total, nil
}

func (s *service) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
	)

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	c, err := s.repo.AddCategory(ctx, input)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Int64("category_id", c.ID))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*Category, error) {
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		input.Title = &trimmed
	}

	c, err := s.repo.UpdateCategory(ctx, id, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update category",
			zap.String("layer", "service"),
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses while any product still belongs to the category.
func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.Int64("category_id", id),
	)

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return err
	}
	if n > 0 {
		log.Info("delete blocked", zap.Int64("products", n))
		return errCategoryInUse(n)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	log.Info("category deleted")
	return nil
}
