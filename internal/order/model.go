package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnpaid   Status = "unpaid"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	UserID     uint            `json:"-"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []*OrderItem    `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderItem carries the unit price captured when the order was placed.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"-"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type PlaceOrderInput struct {
	CartID string `json:"cart_id" validate:"required"`
}

type UpdateOrderInput struct {
	Status Status `json:"status" validate:"required"`
}

// ListOptions narrows an order listing. A nil UserID lists every customer.
type ListOptions struct {
	UserID *uint
	Status *Status
	Limit  *int32
	Page   *int32
}

type AdminOrder struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ItemsCount int64           `json:"items_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// cartLine is one cart item joined with the product price at read time.
type cartLine struct {
	productID   int64
	productName string
	quantity    int
	unitPrice   decimal.Decimal
}

func applyTotals(o *Order) {
	total := decimal.Zero
	for _, item := range o.Items {
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	o.TotalPrice = total
}
