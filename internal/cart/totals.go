package cart

import "github.com/shopspring/decimal"

// applyTotals fills item and cart totals from the live unit prices already loaded.
func applyTotals(c *Cart) {
	total := decimal.Zero
	for _, item := range c.Items {
		item.TotalPrice = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	c.TotalPrice = total
}

func validQuantity(q int) bool {
	return q >= 1 && q <= MaxQuantity
}
