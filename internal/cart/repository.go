package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateCart(ctx context.Context, id uuid.UUID) (*Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error

	GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*CartItem, error)
	// AddItem merges into the existing (cart, product) row or creates it.
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (int64, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCart(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c := &Cart{Items: []*CartItem{}}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carts (id) VALUES ($1) RETURNING id, created_at`, id,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("create cart failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return c, nil
}

const selectItems = `
	SELECT
		ci.id,
		ci.cart_id,
		ci.quantity,
		p.id,
		p.name,
		p.unit_price
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
`

func scanItem(row interface{ Scan(...any) error }) (*CartItem, error) {
	var item CartItem
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.Quantity,
		&item.Product.ID,
		&item.Product.Name,
		&item.Product.UnitPrice,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetCart(ctx context.Context, id uuid.UUID) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCart"),
		zap.String("cart_id", id.String()),
	)

	c := &Cart{Items: []*CartItem{}}
	err := r.db.QueryRowContext(ctx, `SELECT id, created_at FROM carts WHERE id = $1`, id).
		Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		log.Error("get cart failed", zap.Error(err))
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectItems+" WHERE ci.cart_id = $1 ORDER BY ci.id", id)
	if err != nil {
		log.Error("get cart items failed", zap.Error(err))
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, item)
	}
	return c, rows.Err()
}

func (r *repository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *repository) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*CartItem, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		selectItems+" WHERE ci.cart_id = $1 AND ci.id = $2", cartID, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return item, nil
}

func (r *repository) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
		zap.Int64("product_id", productID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var found uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1`, cartID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCartNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("check cart: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, ErrProductNotFound
	}

	var (
		itemID   int64
		existing int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2 FOR UPDATE`,
		cartID, productID,
	).Scan(&itemID, &existing)

	switch {
	case err == nil:
		if existing+quantity > MaxQuantity {
			return 0, ErrInvalidQuantity
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE cart_items SET quantity = quantity + $1 WHERE id = $2`,
			quantity, itemID,
		)
		if err != nil {
			if utils.IsNumericOutOfRange(err) {
				return 0, ErrInvalidQuantity
			}
			log.Error("increment cart item failed", zap.Error(err))
			return 0, fmt.Errorf("increment cart item: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		// the unique (cart_id, product_id) constraint settles a concurrent insert
		err = tx.QueryRowContext(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			RETURNING id
		`, cartID, productID, quantity).Scan(&itemID)
		if err != nil {
			if mapped := classifyWriteError(err); mapped != nil {
				return 0, mapped
			}
			log.Error("insert cart item failed", zap.Error(err))
			return 0, fmt.Errorf("insert cart item: %w", err)
		}
	default:
		return 0, fmt.Errorf("read cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	log.Debug("cart item saved", zap.Int64("cart_item_id", itemID))
	return itemID, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND cart_id = $3`,
		quantity, itemID, cartID,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`,
		itemID, cartID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// classifyWriteError maps constraint failures on cart_items writes to domain errors.
// The cart can vanish mid-add when a concurrent checkout commits first.
func classifyWriteError(err error) error {
	switch {
	case utils.IsForeignKeyViolation(err):
		if strings.Contains(utils.ConstraintName(err), "cart_id") {
			return ErrCartNotFound
		}
		return ErrProductNotFound
	case utils.IsNumericOutOfRange(err):
		return ErrInvalidQuantity
	}
	return nil
}
