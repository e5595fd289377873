package catalog

import "fmt"

// LowStockThreshold is the highest stock that still shows a "N left" badge.
const LowStockThreshold = 5

// Badge describes the stock decoration of a product card.
type Badge struct {
	// AddDisabled is true when the add-to-cart control must be disabled.
	AddDisabled bool
	// AddLabel is the text of the add-to-cart control.
	AddLabel string
	// LowStock is the badge text, empty when no badge is shown.
	LowStock string
}

func StockBadge(stock int) Badge {
	switch {
	case stock <= 0:
		return Badge{AddDisabled: true, AddLabel: "Out of Stock"}
	case stock <= LowStockThreshold:
		return Badge{AddLabel: "Add to Cart", LowStock: fmt.Sprintf("%d left", stock)}
	default:
		return Badge{AddLabel: "Add to Cart"}
	}
}
