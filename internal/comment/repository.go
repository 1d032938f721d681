package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	// GetByProduct lists comments of a product; a nil status returns every status.
	GetByProduct(ctx context.Context, productID int64, status *Status) ([]*Comment, error)
	Create(ctx context.Context, productID int64, input CreateCommentInput) (*Comment, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Comment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByProduct(ctx context.Context, productID int64, status *Status) ([]*Comment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByProduct"),
		zap.Int64("product_id", productID),
	)

	query := `SELECT id, product_id, name, body, status, created_at FROM comments WHERE product_id = $1`
	args := []interface{}{productID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, string(*status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query comments failed", zap.Error(err))
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name, &c.Body, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *repository) Create(ctx context.Context, productID int64, input CreateCommentInput) (*Comment, error) {
	var c Comment
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comments (product_id, name, body)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, name, body, status, created_at
	`, productID, input.Name, input.Body).Scan(&c.ID, &c.ProductID, &c.Name, &c.Body, &c.Status, &c.CreatedAt)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, ErrProductNotFound
		}
		logger.FromCtx(ctx).Error("insert comment failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) (*Comment, error) {
	var c Comment
	err := r.db.QueryRowContext(ctx, `
		UPDATE comments SET status = $1
		WHERE id = $2
		RETURNING id, product_id, name, body, status, created_at
	`, string(status), id).Scan(&c.ID, &c.ProductID, &c.Name, &c.Body, &c.Status, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment status: %w", err)
	}
	return &c, nil
}
