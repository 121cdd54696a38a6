package storage

import (
	"encoding/json"

	"github.com/uhyunpark/tradesweep/pkg/trading"
)

func encodeOrder(o trading.TradeOrder) ([]byte, error) {
	return json.Marshal(o)
}

func decodeOrder(b []byte) (trading.TradeOrder, error) {
	var o trading.TradeOrder
	err := json.Unmarshal(b, &o)
	return o, err
}
