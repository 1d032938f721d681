package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	CategoryID    int64           `json:"category_id"`
	CategoryTitle string          `json:"category_title"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PriceAfterTax decimal.Decimal `json:"price_after_tax"`
	Inventory     int             `json:"inventory"`
	Discounts     []*Discount     `json:"discounts"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Discount struct {
	ID          int64           `json:"id"`
	Discount    decimal.Decimal `json:"discount"`
	Description string          `json:"description"`
}

type ProductQueryOptions struct {
	Search      *string
	CategoryID  *int64
	InventoryGT *int
	InventoryLT *int
	Ordering    string
	Limit       *int32
	Page        *int32
}

type ProductListResult struct {
	Items      []*Product `json:"items"`
	TotalCount int64      `json:"total_count"`
}

type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Slug        string          `json:"slug" validate:"omitempty,max=255"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
}

type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Slug        *string          `json:"slug" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Inventory   *int             `json:"inventory" validate:"omitempty,gte=0"`
}

type CreateDiscountInput struct {
	Discount    decimal.Decimal `json:"discount"`
	Description string          `json:"description" validate:"required,max=255"`
}

// AdminProduct is the back-office row: stock health and moderation load per product.
type AdminProduct struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	CategoryTitle   string          `json:"category_title"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Inventory       int             `json:"inventory"`
	InventoryStatus string          `json:"inventory_status"`
	CommentsCount   int64           `json:"comments_count"`
}

type AdminProductQuery struct {
	Search         *string
	InventoryLevel string
	Limit          *int32
	Page           *int32
}
