package product

import "github.com/shopspring/decimal"

var (
	maxUnitPrice = decimal.NewFromInt(10000)
	maxDiscount  = decimal.NewFromInt(100)
)

// PriceAfterTax applies rate to price and rounds to cents.
func PriceAfterTax(price, rate decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// ValidUnitPrice reports whether price fits NUMERIC(6,2) and is not negative.
func ValidUnitPrice(price decimal.Decimal) bool {
	if price.IsNegative() || price.GreaterThanOrEqual(maxUnitPrice) {
		return false
	}
	return price.Equal(price.Round(2))
}

func validDiscount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxDiscount)
}
