// Package admin holds the back-office table screens. Every screen refetches
// its list from the server after each successful mutation.
package admin

import (
	"context"
	"errors"
	"sync"

	"plant_nursery/storefront/api"
	"plant_nursery/storefront/toast"
)

var ErrUnsupported = errors.New("admin: operation not offered on this screen")

// Endpoints wires a screen to the api; nil operations are not offered.
type Endpoints[T any, R any] struct {
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, body R) error
	Update func(ctx context.Context, id string, body R) error
	Delete func(ctx context.Context, id string) error
}

type Screen[T any, R any] struct {
	endpoints Endpoints[T, R]
	notify    toast.Notifier

	mu    sync.RWMutex
	items []T
}

func NewScreen[T any, R any](endpoints Endpoints[T, R], notify toast.Notifier) *Screen[T, R] {
	return &Screen[T, R]{endpoints: endpoints, notify: notify}
}

func (s *Screen[T, R]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

func (s *Screen[T, R]) Refresh(ctx context.Context) error {
	items, err := s.endpoints.List(ctx)
	if err != nil {
		s.notify.Error(api.Message(err))
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Screen[T, R]) Create(ctx context.Context, body R) error {
	if s.endpoints.Create == nil {
		return ErrUnsupported
	}
	return s.mutate(ctx, "Created successfully", func() error { return s.endpoints.Create(ctx, body) })
}

func (s *Screen[T, R]) Update(ctx context.Context, id string, body R) error {
	if s.endpoints.Update == nil {
		return ErrUnsupported
	}
	return s.mutate(ctx, "Updated successfully", func() error { return s.endpoints.Update(ctx, id, body) })
}

func (s *Screen[T, R]) Delete(ctx context.Context, id string) error {
	if s.endpoints.Delete == nil {
		return ErrUnsupported
	}
	return s.mutate(ctx, "Deleted successfully", func() error { return s.endpoints.Delete(ctx, id) })
}

func (s *Screen[T, R]) mutate(ctx context.Context, success string, send func() error) error {
	if err := send(); err != nil {
		s.notify.Error(api.Message(err))
		return err
	}
	s.notify.Success(success)
	return s.Refresh(ctx)
}
