package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plant_nursery/model"
)

// Sort returns a sorted copy of products. It is applied on top of whatever
// order the server used. The sort is stable, so applying it twice changes
// nothing. Unknown keys keep the server order.
func Sort(products []model.Products, key string) []model.Products {
	out := append([]model.Products(nil), products...)
	var less func(a, b model.Products) bool
	switch key {
	case SortPriceLow:
		less = func(a, b model.Products) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b model.Products) bool { return a.Price.GreaterThan(b.Price) }
	case SortPopularity:
		// a product without reviews has rating 0
		less = func(a, b model.Products) bool { return a.Rating > b.Rating }
	case SortName:
		collator := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b model.Products) bool { return collator.CompareString(a.Name, b.Name) < 0 }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
