package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
)

// ErrStale is returned by Load when a newer Load started before this one
// finished; its response was dropped.
var ErrStale = errors.New("catalog: superseded by a newer request")

type Status int

const (
	StatusIdle Status = iota
	StatusLoaded
	StatusEmpty
	StatusError
)

// Source is the part of the api client the catalog reads from.
type Source interface {
	Products(ctx context.Context, q api.ProductQuery) ([]model.Products, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type Result struct {
	Status     Status
	Filter     Filter
	Products   []model.Products
	Categories []model.Category
	// Err is the failure shown in the error state, with a retry action.
	Err error
}

// Query is the catalog listing. Only the response of the latest Load is
// ever applied.
type Query struct {
	source     Source
	generation *atomic.Uint64

	mu     sync.RWMutex
	result Result
}

func NewQuery(source Source) *Query {
	return &Query{source: source, generation: atomic.NewUint64(0)}
}

func (q *Query) Result() Result {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.result
}

// Load fetches products and categories in parallel and re-sorts products
// client-side with the filter's sort key.
func (q *Query) Load(ctx context.Context, filter Filter) (Result, error) {
	gen := q.generation.Inc()

	var (
		products   []model.Products
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = q.source.Products(gctx, api.ProductQuery{
			Search:   filter.Search,
			Category: filter.CategoryID,
			Price:    filter.PriceRange,
			Sort:     filter.Sort,
		})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = q.source.Categories(gctx)
		return err
	})
	err := g.Wait()

	result := Result{Filter: filter, Categories: categories}
	switch {
	case err != nil:
		result.Status = StatusError
		result.Err = err
	case len(products) == 0:
		result.Status = StatusEmpty
		result.Products = []model.Products{}
	default:
		result.Status = StatusLoaded
		result.Products = Sort(products, filter.Sort)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if gen != q.generation.Load() {
		return result, ErrStale
	}
	q.result = result
	return result, err
}

// Retry repeats the last filter, typically from the error state.
func (q *Query) Retry(ctx context.Context) (Result, error) {
	return q.Load(ctx, q.Result().Filter)
}

// ClearFilters is the action offered by the empty state.
func (q *Query) ClearFilters(ctx context.Context) (Result, error) {
	return q.Load(ctx, q.Result().Filter.Cleared())
}
