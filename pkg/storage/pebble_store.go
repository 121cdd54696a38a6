package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/uhyunpark/tradesweep/pkg/trading"
)

// PebbleStore persists orders in a Pebble database.
// Values iterates in key order, i.e. sorted by order id.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) a Pebble database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	return NewPebbleStoreWithOptions(path, &pebble.Options{})
}

// NewPebbleStoreWithOptions opens a Pebble database with custom options,
// e.g. an in-memory vfs for tests.
func NewPebbleStoreWithOptions(path string, opts *pebble.Options) (*PebbleStore, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

// Insert persists an order
func (s *PebbleStore) Insert(o trading.TradeOrder) error {
	data, err := encodeOrder(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := s.db.Set(orderKey(o.ID), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// Get loads an order by id
func (s *PebbleStore) Get(id string) (trading.TradeOrder, bool, error) {
	data, closer, err := s.db.Get(orderKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return trading.TradeOrder{}, false, nil
	}
	if err != nil {
		return trading.TradeOrder{}, false, fmt.Errorf("failed to get order: %w", err)
	}
	defer closer.Close()

	o, err := decodeOrder(data)
	if err != nil {
		return trading.TradeOrder{}, false, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return o, true, nil
}

// Values loads every stored order
func (s *PebbleStore) Values() ([]trading.TradeOrder, error) {
	prefix := orderPrefix()
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open iterator: %w", err)
	}
	defer iter.Close()

	orders := []trading.TradeOrder{}
	for iter.First(); iter.Valid(); iter.Next() {
		o, err := decodeOrder(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal order %s: %w", iter.Key(), err)
		}
		orders = append(orders, o)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// Remove deletes an order
func (s *PebbleStore) Remove(id string) error {
	if err := s.db.Delete(orderKey(id), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

var _ trading.OrderStore = (*PebbleStore)(nil)
