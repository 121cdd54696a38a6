package storage

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/uhyunpark/tradesweep/pkg/trading"
)

func newTestPebbleStore(t *testing.T) *PebbleStore {
	t.Helper()
	s, err := NewPebbleStoreWithOptions("orders", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPebbleStore_RoundTrip(t *testing.T) {
	s := newTestPebbleStore(t)
	o := testOrder("0b1f", "BTCUSD", trading.Buy, 51000.25)

	if err := s.Insert(o); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, ok, err := s.Get(o.ID)
	if err != nil || !ok {
		t.Fatalf("Get ok=%v err=%v", ok, err)
	}
	if got.ID != o.ID || got.Symbol != o.Symbol || got.Price != o.Price ||
		got.Quantity != o.Quantity || got.Type != o.Type || !got.CreatedAt.Equal(o.CreatedAt) {
		t.Errorf("Get = %+v, want %+v", got, o)
	}

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Errorf("Get(missing) ok=%v err=%v, want absent", ok, err)
	}
}

func TestPebbleStore_ValuesAndRemove(t *testing.T) {
	s := newTestPebbleStore(t)

	empty, err := s.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty store Values() = %#v, want empty non-nil slice", empty)
	}

	for _, id := range []string{"b", "c", "a"} {
		if err := s.Insert(testOrder(id, "ETHUSD", trading.Sell, 1500)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	got, err := s.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	// Pebble iterates in key order.
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("Values() = %v, want [a b c]", idsOf(got))
	}

	if err := s.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = s.Values()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("after remove Values() = %v, want [a c]", idsOf(got))
	}
}

func TestPebbleStore_ReopenKeepsOrders(t *testing.T) {
	fs := vfs.NewMem()
	s, err := NewPebbleStoreWithOptions("orders", &pebble.Options{FS: fs})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Insert(testOrder("keep", "BTCUSD", trading.Buy, 1))
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := NewPebbleStoreWithOptions("orders", &pebble.Options{FS: fs})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if _, ok, err := s2.Get("keep"); !ok || err != nil {
		t.Errorf("order lost across reopen: ok=%v err=%v", ok, err)
	}
}

func TestPebbleStore_DeskSweep(t *testing.T) {
	s := newTestPebbleStore(t)
	desk := trading.NewDesk(s, trading.DefaultReferencePrices())

	buy, err := desk.Submit(trading.OrderRequest{Symbol: "BTCUSD", Quantity: "1", Type: "buy", Price: "51000"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := desk.Submit(trading.OrderRequest{Symbol: "BTCUSD", Quantity: "1", Type: "sell", Price: "51000"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	fills, err := desk.Execute("BTCUSD")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(fills) != 1 || fills[0].ID != buy.ID {
		t.Errorf("fills = %v, want [%s]", idsOf(fills), buy.ID)
	}
	left, _ := s.Values()
	if len(left) != 1 {
		t.Errorf("%d orders left, want 1", len(left))
	}
}
