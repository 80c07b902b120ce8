package cart

import (
	"sync"

	"vintage-atelier/internal/domain"
)

// Snapshot is a read-only view of a cart at one point in time.
type Snapshot struct {
	Items      []domain.CartItem
	TotalItems int
	TotalPrice int
}

// Store keeps one cart per session. Carts are created empty on first touch
// and live for the lifetime of the process; they are never persisted. The
// lock keeps each session's operations serialized, matching the one-writer
// model of the storefront.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Update runs fn against the session's cart under the store lock.
func (s *Store) Update(sessionID string, fn func(*Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart(sessionID))
}

// Snapshot copies the session's current entries and totals.
func (s *Store) Snapshot(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	return Snapshot{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func (s *Store) cart(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}
