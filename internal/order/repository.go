package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// PlaceOrder converts a cart into an order and deletes the cart in one transaction.
	PlaceOrder(ctx context.Context, cartID uuid.UUID, userID uint) (*Order, error)
	GetOrders(ctx context.Context, opts ListOptions) ([]*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	GetAdminOrders(ctx context.Context, limit, page *int32) ([]*AdminOrder, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PlaceOrder(ctx context.Context, cartID uuid.UUID, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "PlaceOrder"),
		zap.String("cart_id", cartID.String()),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// a concurrent placement on the same cart waits here and then finds it gone
	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		log.Error("lock cart failed", zap.Error(err))
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	lines, err := readCartLines(ctx, tx, cartID)
	if err != nil {
		log.Error("read cart items failed", zap.Error(err))
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	customerID, err := customer.EnsureCustomer(ctx, tx, userID)
	if err != nil {
		log.Error("resolve customer failed", zap.Error(err))
		return nil, err
	}

	o := &Order{CustomerID: customerID, UserID: userID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id)
		VALUES ($1)
		RETURNING id, status, created_at
	`, customerID).Scan(&o.ID, &o.Status, &o.CreatedAt)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return nil, fmt.Errorf("insert order: %w", err)
	}

	o.Items, err = insertItems(ctx, tx, o.ID, lines)
	if err != nil {
		log.Error("insert order items failed", zap.Error(err))
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		log.Error("delete cart failed", zap.Error(err))
		return nil, fmt.Errorf("delete cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
	)
	return o, nil
}

func readCartLines(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, p.name, ci.quantity, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("read cart items: %w", err)
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.productID, &l.productName, &l.quantity, &l.unitPrice); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// insertItems writes every line with a single multi-row INSERT. unit_price is
// copied from the product as read inside this transaction.
func insertItems(ctx context.Context, tx *sql.Tx, orderID int64, lines []cartLine) ([]*OrderItem, error) {
	values := make([]string, 0, len(lines))
	args := make([]any, 0, len(lines)*4)
	for i, l := range lines {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, orderID, l.productID, l.quantity, l.unitPrice)
	}

	query := fmt.Sprintf(`
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES %s
		RETURNING id, product_id
	`, strings.Join(values, ", "))

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("insert order items: product no longer exists: %w", err)
		}
		return nil, fmt.Errorf("insert order items: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]int64, len(lines))
	for rows.Next() {
		var id, productID int64
		if err := rows.Scan(&id, &productID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		ids[productID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items := make([]*OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &OrderItem{
			ID:          ids[l.productID],
			OrderID:     orderID,
			ProductID:   l.productID,
			ProductName: l.productName,
			Quantity:    l.quantity,
			UnitPrice:   l.unitPrice,
		})
	}
	return items, nil
}

const selectOrders = `
	SELECT o.id, o.customer_id, c.user_id, o.status, o.created_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
`

func (r *repository) GetOrders(ctx context.Context, opts ListOptions) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrders"),
	)

	var (
		where []string
		args  []any
	)
	argPos := 1

	if opts.UserID != nil {
		where = append(where, fmt.Sprintf("c.user_id = $%d", argPos))
		args = append(args, *opts.UserID)
		argPos++
	}
	if opts.Status != nil {
		where = append(where, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, string(*opts.Status))
		argPos++
	}

	query := selectOrders
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit, offset := utils.Pagination(opts.Limit, opts.Page)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query orders failed", zap.Error(err))
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	byID := map[int64]*Order{}
	var ids []int64
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.UserID, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []*OrderItem{}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}
	if err := r.attachItems(ctx, ids, byID); err != nil {
		log.Error("load order items failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, ids []int64, byID map[int64]*Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}
	return rows.Err()
}

func (r *repository) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, selectOrders+" WHERE o.id = $1", id).
		Scan(&o.ID, &o.CustomerID, &o.UserID, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get order failed",
			zap.String("layer", "repository"),
			zap.Int64("order_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order: %w", err)
	}

	o.Items = []*OrderItem{}
	if err := r.attachItems(ctx, []int64{o.ID}, map[int64]*Order{o.ID: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) GetAdminOrders(ctx context.Context, limit, page *int32) ([]*AdminOrder, error) {
	finalLimit, offset := utils.Pagination(limit, page)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			o.id,
			o.customer_id,
			o.status,
			o.created_at,
			COUNT(oi.id) AS items_count,
			COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_price
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1 OFFSET $2
	`, finalLimit, offset)
	if err != nil {
		logger.FromCtx(ctx).Error("query admin orders failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("query admin orders: %w", err)
	}
	defer rows.Close()

	out := []*AdminOrder{}
	for rows.Next() {
		var o AdminOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.CreatedAt, &o.ItemsCount, &o.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan admin order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
