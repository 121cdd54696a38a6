package storage

import (
	"sync"

	"github.com/uhyunpark/tradesweep/pkg/trading"
)

// MemoryStore keeps orders in a map and remembers insertion order,
// so Values iterates oldest first.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[string]trading.TradeOrder
	ids    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]trading.TradeOrder),
	}
}

// Insert stores o under o.ID, replacing any previous value for that id
// without changing its position.
func (s *MemoryStore) Insert(o trading.TradeOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		s.ids = append(s.ids, o.ID)
	}
	s.orders[o.ID] = o
	return nil
}

func (s *MemoryStore) Get(id string) (trading.TradeOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok, nil
}

func (s *MemoryStore) Values() ([]trading.TradeOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trading.TradeOrder, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.orders[id])
	}
	return out, nil
}

// Remove deletes id. Removing an unknown id is a no-op.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return nil
	}
	delete(s.orders, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored orders.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

var _ trading.OrderStore = (*MemoryStore)(nil)
