// Package cartcount holds the cart badge value shared by every view.
// Views change it only through Dispatch so each mutation site is explicit.
package cartcount

import "sync"

type Kind int

const (
	KindSet Kind = iota
	KindIncrement
	KindDecrement
)

type Action struct {
	Kind  Kind
	Value int
}

// Set replaces the value, used with the server-computed sum of quantities.
func Set(n int) Action { return Action{Kind: KindSet, Value: n} }

func Increment(n int) Action { return Action{Kind: KindIncrement, Value: n} }

func Decrement(n int) Action { return Action{Kind: KindDecrement, Value: n} }

type Store struct {
	mu          sync.Mutex
	value       int
	subscribers map[int]chan int
	nextID      int
}

func New() *Store {
	return &Store{subscribers: make(map[int]chan int)}
}

// Dispatch applies the action and returns the new value. The value never
// drops below zero.
func (s *Store) Dispatch(action Action) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch action.Kind {
	case KindSet:
		s.value = action.Value
	case KindIncrement:
		s.value += action.Value
	case KindDecrement:
		s.value -= action.Value
	}
	if s.value < 0 {
		s.value = 0
	}
	s.publish()
	return s.value
}

func (s *Store) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Reset is used on logout and when the session has no token.
func (s *Store) Reset() {
	s.Dispatch(Set(0))
}

// Subscribe returns a channel that always holds the latest value; a slow
// reader skips intermediate values. The returned func unsubscribes.
func (s *Store) Subscribe() (<-chan int, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan int, 1)
	ch <- s.value
	s.subscribers[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
}

// publish must run with mu held.
func (s *Store) publish() {
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- s.value
	}
}
