package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, int64, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
	CountOrderItems(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)

	CreateDiscount(ctx context.Context, input CreateDiscountInput) (*Discount, error)
	GetDiscounts(ctx context.Context) ([]*Discount, error)
	AttachDiscount(ctx context.Context, productID, discountID int64) error

	GetAdminList(ctx context.Context, opts AdminProductQuery) ([]*AdminProduct, int64, error)
	ClearInventory(ctx context.Context, ids []int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT
		p.id,
		p.name,
		p.slug,
		p.description,
		p.category_id,
		c.title,
		p.unit_price,
		p.inventory,
		p.created_at,
		p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.CategoryID,
		&p.CategoryTitle,
		&p.UnitPrice,
		&p.Inventory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Discounts = []*Discount{}
	return &p, nil
}

func (r *repository) GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	orderBy, ok := orderClause(opts.Ordering)
	if !ok {
		return nil, 0, ErrInvalidOrdering
	}
	limit, offset := utils.Pagination(opts.Limit, opts.Page)

	where := []string{}
	args := []interface{}{}

	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Search)+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR c.title ILIKE $%d)", len(args), len(args)))
	}
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if opts.InventoryGT != nil {
		args = append(args, *opts.InventoryGT)
		where = append(where, fmt.Sprintf("p.inventory > $%d", len(args)))
	}
	if opts.InventoryLT != nil {
		args = append(args, *opts.InventoryLT)
		where = append(where, fmt.Sprintf("p.inventory < $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id" + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count products failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := selectProduct + whereSQL + " ORDER BY " + orderBy
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("executing GetList query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query products failed", zap.Error(err))
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDiscounts(ctx, products); err != nil {
		log.Error("load discounts failed", zap.Error(err))
		return nil, 0, err
	}

	return products, total, nil
}

// attachDiscounts loads discounts for all products in one query.
func (r *repository) attachDiscounts(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `
		SELECT pd.product_id, d.id, d.discount, d.description
		FROM product_discounts pd
		JOIN discounts d ON d.id = pd.discount_id
		WHERE pd.product_id = ANY($1)
		ORDER BY d.id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			d         Discount
		)
		if err := rows.Scan(&productID, &d.ID, &d.Discount, &d.Description); err != nil {
			return fmt.Errorf("scan discount: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Discounts = append(p.Discounts, &d)
		}
	}
	return rows.Err()
}

func (r *repository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get product failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get product: %w", err)
	}

	if err := r.attachDiscounts(ctx, []*Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, description, category_id, unit_price, inventory)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, input.Name, input.Slug, input.Description, input.CategoryID, input.UnitPrice, input.Inventory).Scan(&id)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, ErrCategoryAbsent
		}
		log.Error("insert product failed", zap.Error(err))
		return nil, fmt.Errorf("insert product: %w", err)
	}

	log.Info("product created", zap.Int64("product_id", id))
	return r.GetProductByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Slug != nil {
		add("slug", *input.Slug)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.UnitPrice != nil {
		add("unit_price", *input.UnitPrice)
	}
	if input.Inventory != nil {
		add("inventory", *input.Inventory)
	}

	if len(sets) == 0 {
		return r.GetProductByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return nil, ErrCategoryAbsent
		}
		logger.FromCtx(ctx).Error("update product failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetProductByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) CountOrderItems(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items WHERE product_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count order items: %w", err)
	}
	return n, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}

func (r *repository) CreateDiscount(ctx context.Context, input CreateDiscountInput) (*Discount, error) {
	var d Discount
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO discounts (discount, description)
		VALUES ($1, $2)
		RETURNING id, discount, description
	`, input.Discount, input.Description).Scan(&d.ID, &d.Discount, &d.Description)
	if err != nil {
		return nil, fmt.Errorf("insert discount: %w", err)
	}
	return &d, nil
}

func (r *repository) GetDiscounts(ctx context.Context) ([]*Discount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, discount, description FROM discounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close()

	discounts := []*Discount{}
	for rows.Next() {
		var d Discount
		if err := rows.Scan(&d.ID, &d.Discount, &d.Description); err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, &d)
	}
	return discounts, rows.Err()
}

func (r *repository) AttachDiscount(ctx context.Context, productID, discountID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product_discounts (product_id, discount_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, productID, discountID)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			if strings.Contains(utils.ConstraintName(err), "discount") {
				return ErrDiscountNotFound
			}
			return ErrProductNotFound
		}
		return fmt.Errorf("attach discount: %w", err)
	}
	return nil
}

func (r *repository) GetAdminList(ctx context.Context, opts AdminProductQuery) ([]*AdminProduct, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetAdminList"),
	)

	limit, offset := utils.Pagination(opts.Limit, opts.Page)

	where := []string{}
	args := []interface{}{}

	if opts.InventoryLevel != "" {
		cond, ok := levelCondition(opts.InventoryLevel)
		if !ok {
			return nil, 0, ErrInvalidLevel
		}
		where = append(where, cond)
	}
	if opts.Search != nil && *opts.Search != "" {
		args = append(args, "%"+*opts.Search+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products p"+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count admin products failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `
		SELECT
			p.id,
			p.name,
			c.title,
			p.unit_price,
			p.inventory,
			(SELECT COUNT(*) FROM comments cm WHERE cm.product_id = p.id) AS comments_count
		FROM products p
		JOIN categories c ON c.id = p.category_id
	` + whereSQL + " ORDER BY p.id ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query admin products failed", zap.Error(err))
		return nil, 0, fmt.Errorf("query admin products: %w", err)
	}
	defer rows.Close()

	items := make([]*AdminProduct, 0, limit)
	for rows.Next() {
		var p AdminProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryTitle, &p.UnitPrice, &p.Inventory, &p.CommentsCount); err != nil {
			return nil, 0, fmt.Errorf("scan admin product: %w", err)
		}
		p.InventoryStatus = InventoryStatus(p.Inventory)
		items = append(items, &p)
	}
	return items, total, rows.Err()
}

func (r *repository) ClearInventory(ctx context.Context, ids []int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET inventory = 0, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("clear inventory: %w", err)
	}
	return res.RowsAffected()
}
