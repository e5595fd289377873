package catalog

// Sort keys understood by both the server and Sort.
const (
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortPopularity = "popularity"
	SortName       = "name"
)

// PriceBuckets are the price-range filter values offered to the shopper.
var PriceBuckets = []string{"0-499", "500-999", "1000-1999", "2000-4999", "5000+"}

type Filter struct {
	Search     string
	CategoryID string
	PriceRange string
	Sort       string
}

// Cleared drops every filter but keeps the chosen sort.
func (f Filter) Cleared() Filter {
	return Filter{Sort: f.Sort}
}

func (f Filter) IsZero() bool {
	return f.Search == "" && f.CategoryID == "" && f.PriceRange == ""
}
