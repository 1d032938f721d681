package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	AddCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectCategory = `
	SELECT
		c.id,
		c.title,
		c.description,
		c.top_product_id,
		(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS products_count
	FROM categories c
`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var (
		c     Category
		topID sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &topID, &c.ProductsCount); err != nil {
		return nil, err
	}
	if topID.Valid {
		c.TopProductID = &topID.Int64
	}
	return &c, nil
}

func (r *repository) GetCategories(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, int64, error) {

	finalLimit, finalOffset := utils.Pagination(limit, page)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
		zap.String("filter", utils.PtrString(filter)),
		zap.Int32("limit", finalLimit),
		zap.Int32("offset", finalOffset),
	)

	where := []string{}
	args := []interface{}{}

	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("c.title ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	var total int64
	countQuery := "SELECT COUNT(*) FROM categories c" + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count categories failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	// ---------- DATA ----------
	query := selectCategory + whereSQL + " ORDER BY c.title ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	log.Debug("executing GetCategories query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, 0, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*Category, 0, finalLimit)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *repository) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, selectCategory+" WHERE c.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get category failed",
			zap.String("layer", "repository"),
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *repository) AddCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddCategory"),
		zap.String("title", input.Title),
	)

	query := `
		INSERT INTO categories (title, description, top_product_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, top_product_id
	`

	var (
		c     Category
		topID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, input.Title, input.Description, nullableID(input.TopProductID)).
		Scan(&c.ID, &c.Title, &c.Description, &topID)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, ErrTopProductAbsent
		}
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}
	if topID.Valid {
		c.TopProductID = &topID.Int64
	}

	log.Info("AddCategory success", zap.Int64("category_id", c.ID))
	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCategory"),
		zap.Int64("category_id", id),
	)

	sets := []string{}
	args := []interface{}{}

	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.TopProductID != nil {
		args = append(args, *input.TopProductID)
		sets = append(sets, fmt.Sprintf("top_product_id = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetCategoryByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, ErrTopProductAbsent
		}
		log.Error("UpdateCategory failed", zap.Error(err))
		return nil, fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrCategoryNotFound
	}

	return r.GetCategoryByID(ctx, id)
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			// a product was attached between the guard and the delete
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) CountProducts(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return n, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
