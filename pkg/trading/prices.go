package trading

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultReferencePriceSpec is the built-in table in REFERENCE_PRICES form.
const DefaultReferencePriceSpec = "BTCUSD:50000,ETHUSD:2000"

// ReferencePrices is the fixed execution threshold per symbol.
// It is built once at start-up and never mutated.
type ReferencePrices struct {
	prices map[string]decimal.Decimal
}

// NewReferencePrices copies the given table. Non-positive prices are rejected.
func NewReferencePrices(prices map[string]decimal.Decimal) (*ReferencePrices, error) {
	cp := make(map[string]decimal.Decimal, len(prices))
	for sym, px := range prices {
		if sym == "" {
			return nil, fmt.Errorf("reference price with empty symbol")
		}
		if !px.IsPositive() {
			return nil, fmt.Errorf("reference price for %s must be positive, got %s", sym, px)
		}
		cp[sym] = px
	}
	return &ReferencePrices{prices: cp}, nil
}

// DefaultReferencePrices returns the BTCUSD/ETHUSD table.
func DefaultReferencePrices() *ReferencePrices {
	rp, err := ParseReferencePrices(DefaultReferencePriceSpec)
	if err != nil {
		panic(err)
	}
	return rp
}

// ParseReferencePrices parses "SYM:PRICE,SYM:PRICE". Blank entries are skipped.
func ParseReferencePrices(spec string) (*ReferencePrices, error) {
	prices := make(map[string]decimal.Decimal)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		sym, raw, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid reference price entry %q: want SYMBOL:PRICE", entry)
		}
		sym = strings.TrimSpace(sym)
		px, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid reference price for %s: %w", sym, err)
		}
		if _, dup := prices[sym]; dup {
			return nil, fmt.Errorf("duplicate reference price for %s", sym)
		}
		prices[sym] = px
	}
	return NewReferencePrices(prices)
}

// Lookup returns the reference price for symbol (case-sensitive).
func (r *ReferencePrices) Lookup(symbol string) (decimal.Decimal, bool) {
	px, ok := r.prices[symbol]
	return px, ok
}

// Symbols returns the configured symbols in sorted order.
func (r *ReferencePrices) Symbols() []string {
	out := make([]string, 0, len(r.prices))
	for sym := range r.prices {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
