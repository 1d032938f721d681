package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceAfterTax(t *testing.T) {
	rate := decimal.RequireFromString("0.10")

	tests := []struct {
		price string
		want  string
	}{
		{"10.00", "11"},
		{"5.00", "5.5"},
		{"19.99", "21.99"},
		{"0.05", "0.06"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := PriceAfterTax(decimal.RequireFromString(tt.price), rate)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestValidUnitPrice(t *testing.T) {
	assert.True(t, ValidUnitPrice(decimal.RequireFromString("0")))
	assert.True(t, ValidUnitPrice(decimal.RequireFromString("9999.99")))
	assert.True(t, ValidUnitPrice(decimal.RequireFromString("10.5")))
	assert.False(t, ValidUnitPrice(decimal.RequireFromString("10000")))
	assert.False(t, ValidUnitPrice(decimal.RequireFromString("-1")))
	assert.False(t, ValidUnitPrice(decimal.RequireFromString("1.005")))
}

func TestInventoryStatus(t *testing.T) {
	assert.Equal(t, InventoryLow, InventoryStatus(0))
	assert.Equal(t, InventoryLow, InventoryStatus(9))
	assert.Equal(t, InventoryMedium, InventoryStatus(10))
	assert.Equal(t, InventoryMedium, InventoryStatus(50))
	assert.Equal(t, InventoryHigh, InventoryStatus(51))
}

func TestLevelCondition(t *testing.T) {
	cond, ok := levelCondition(LevelHigh)
	assert.True(t, ok)
	assert.Equal(t, "p.inventory < 3", cond)

	cond, ok = levelCondition(LevelMedium)
	assert.True(t, ok)
	assert.Equal(t, "p.inventory BETWEEN 3 AND 10", cond)

	cond, ok = levelCondition(LevelOK)
	assert.True(t, ok)
	assert.Equal(t, "p.inventory > 10", cond)

	_, ok = levelCondition("empty")
	assert.False(t, ok)
}

func TestOrderClause(t *testing.T) {
	clause, ok := orderClause("")
	assert.True(t, ok)
	assert.Equal(t, "p.id ASC", clause)

	clause, ok = orderClause("-unit_price")
	assert.True(t, ok)
	assert.Equal(t, "p.unit_price DESC", clause)

	_, ok = orderClause("price; DROP TABLE products")
	assert.False(t, ok)
}
