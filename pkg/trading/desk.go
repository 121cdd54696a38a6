package trading

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uhyunpark/tradesweep/pkg/util"
)

// Desk accepts orders into the store and sweeps them against the
// reference price table.
//
// Thread-safe: inserts and whole sweeps are serialised by mu, so a sweep's
// read-filter-remove sequence never interleaves with another sweep or insert.
type Desk struct {
	mu     sync.Mutex
	store  OrderStore
	prices *ReferencePrices

	Clock  util.Clock
	NewID  func() string
	Logger *zap.SugaredLogger

	// OnFill is called after a sweep that filled at least one order,
	// outside the desk lock.
	OnFill func(symbol string, fills []TradeOrder)
}

// NewDesk wires a desk to its store and reference prices.
func NewDesk(store OrderStore, prices *ReferencePrices) *Desk {
	return &Desk{
		store:  store,
		prices: prices,
		Clock:  util.RealClock{},
		NewID:  uuid.NewString,
		Logger: zap.NewNop().Sugar(),
	}
}

// Submit validates req and stores the resulting order.
func (d *Desk) Submit(req OrderRequest) (TradeOrder, error) {
	accepted, err := Validate(req.Symbol, req.Quantity, req.Type, req.Price)
	if err != nil {
		d.Logger.Debugw("order_rejected", "symbol", req.Symbol, "reason", err.Error())
		return TradeOrder{}, err
	}

	order := TradeOrder{
		ID:        d.NewID(),
		Symbol:    req.Symbol,
		Quantity:  accepted.Quantity,
		Price:     accepted.Price,
		Type:      TradeType(req.Type),
		CreatedAt: d.Clock.Now(),
	}

	d.mu.Lock()
	err = d.store.Insert(order)
	d.mu.Unlock()
	if err != nil {
		return TradeOrder{}, fmt.Errorf("insert order %s: %w", order.ID, err)
	}

	d.Logger.Infow("order_submitted",
		"id", order.ID,
		"symbol", order.Symbol,
		"type", order.Type,
		"quantity", order.Quantity,
		"price", order.Price)
	return order, nil
}

// List returns every stored order in store iteration order.
func (d *Desk) List() ([]TradeOrder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	orders, err := d.store.Values()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []TradeOrder{}
	}
	return orders, nil
}

// Execute runs one sweep for symbol. Buy orders fill when their price is at
// or above the reference price, sell orders when at or below it. Filled
// orders are removed and returned in the order the store yielded them.
// A symbol without a reference price fills nothing.
//
// A sweep is all or nothing: if a removal fails, the orders already removed
// are put back and only the error is returned.
func (d *Desk) Execute(symbol string) ([]TradeOrder, error) {
	if symbol == "" {
		return nil, ErrMissingParameter
	}

	ref, ok := d.prices.Lookup(symbol)
	if !ok {
		d.Logger.Warnw("execute_unknown_symbol", "symbol", symbol)
		return []TradeOrder{}, nil
	}

	d.mu.Lock()
	fills, err := d.sweep(symbol, ref)
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if len(fills) > 0 {
		d.Logger.Infow("trades_executed", "symbol", symbol, "fills", len(fills), "reference_price", ref.String())
		if d.OnFill != nil {
			d.OnFill(symbol, fills)
		}
	}
	return fills, nil
}

// sweep must be called with mu held.
func (d *Desk) sweep(symbol string, ref decimal.Decimal) ([]TradeOrder, error) {
	orders, err := d.store.Values()
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}

	fills := []TradeOrder{}
	for _, order := range orders {
		if order.Symbol != symbol || !Fills(order, ref) {
			continue
		}
		if err := d.store.Remove(order.ID); err != nil {
			d.restore(fills)
			return nil, fmt.Errorf("remove filled order %s: %w", order.ID, err)
		}
		fills = append(fills, order)
	}
	return fills, nil
}

// restore re-inserts orders removed by a failed sweep. Must be called with
// mu held.
func (d *Desk) restore(removed []TradeOrder) {
	for _, order := range removed {
		if err := d.store.Insert(order); err != nil {
			d.Logger.Errorw("sweep_restore_failed", "id", order.ID, "symbol", order.Symbol, "err", err)
		}
	}
	if len(removed) > 0 {
		d.Logger.Warnw("sweep_rolled_back", "restored", len(removed))
	}
}

// Fills reports whether order's price condition holds against ref.
func Fills(order TradeOrder, ref decimal.Decimal) bool {
	px := decimal.NewFromFloat(order.Price)
	switch order.Type {
	case Buy:
		return px.GreaterThanOrEqual(ref)
	case Sell:
		return px.LessThanOrEqual(ref)
	default:
		return false
	}
}
