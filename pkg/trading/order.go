package trading

import "time"

// TradeType is the side of an order.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// Valid reports whether t is exactly "buy" or "sell".
func (t TradeType) Valid() bool {
	return t == Buy || t == Sell
}

// TradeOrder is a resting order waiting for its price condition.
// Orders are never updated; they only leave the store when filled.
type TradeOrder struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Type      TradeType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderRequest holds the raw submitted fields before validation.
type OrderRequest struct {
	Symbol   string
	Quantity string
	Price    string
	Type     string
}

// OrderStore is the key-value collaborator that owns all orders.
// Inserts and removals must be visible to the next read.
// Values may return orders in any order, but it must be stable for a given
// store state since the execution sweep reports fills in that order.
type OrderStore interface {
	Insert(order TradeOrder) error
	Get(id string) (TradeOrder, bool, error)
	Values() ([]TradeOrder, error)
	Remove(id string) error
}
