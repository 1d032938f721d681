package product

const (
	InventoryLow    = "Low"
	InventoryMedium = "Medium"
	InventoryHigh   = "High"
)

// InventoryStatus labels a stock level for the admin product list.
func InventoryStatus(inventory int) string {
	switch {
	case inventory < 10:
		return InventoryLow
	case inventory > 50:
		return InventoryHigh
	default:
		return InventoryMedium
	}
}

// Admin inventory_level filter values. "high" means high urgency, i.e. almost out of stock.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelOK     = "ok"
)

// levelCondition returns the SQL predicate for an inventory_level filter.
func levelCondition(level string) (string, bool) {
	switch level {
	case LevelHigh:
		return "p.inventory < 3", true
	case LevelMedium:
		return "p.inventory BETWEEN 3 AND 10", true
	case LevelOK:
		return "p.inventory > 10", true
	}
	return "", false
}

var orderings = map[string]string{
	"name":        "p.name ASC",
	"-name":       "p.name DESC",
	"unit_price":  "p.unit_price ASC",
	"-unit_price": "p.unit_price DESC",
	"inventory":   "p.inventory ASC",
	"-inventory":  "p.inventory DESC",
}

func orderClause(ordering string) (string, bool) {
	if ordering == "" {
		return "p.id ASC", true
	}
	clause, ok := orderings[ordering]
	return clause, ok
}
