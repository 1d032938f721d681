package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxQuantity = 32767

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []*CartItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartItem struct {
	ID         int64           `json:"id"`
	CartID     uuid.UUID       `json:"-"`
	Product    ProductSummary  `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ProductSummary struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type AddItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=32767"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=32767"`
}
