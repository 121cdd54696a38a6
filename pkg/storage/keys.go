package storage

import "fmt"

// Key schema for Pebble storage:
//
//   ord:<orderID> → TradeOrder (JSON)
//
// Iteration over the prefix yields orders sorted by id.

const prefixOrder = "ord:"

// orderKey returns the key for an order
// Format: "ord:{orderID}"
func orderKey(orderID string) []byte {
	return []byte(fmt.Sprintf("%s%s", prefixOrder, orderID))
}

// orderPrefix returns the prefix shared by all orders
func orderPrefix() []byte {
	return []byte(prefixOrder)
}

// keyUpperBound returns the exclusive upper bound for a prefix scan
func keyUpperBound(prefix []byte) []byte {
	bound := make([]byte, len(prefix))
	copy(bound, prefix)
	bound[len(bound)-1]++
	return bound
}
