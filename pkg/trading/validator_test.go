package trading

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		symbol     string
		quantity   string
		tradeType  string
		price      string
		wantReason string
		wantQty    float64
		wantPrice  float64
	}{
		{name: "valid buy", symbol: "BTCUSD", quantity: "1.5", tradeType: "buy", price: "51000", wantQty: 1.5, wantPrice: 51000},
		{name: "valid sell", symbol: "ETHUSD", quantity: "10", tradeType: "sell", price: "1999.99", wantQty: 10, wantPrice: 1999.99},
		{name: "exponent notation", symbol: "BTCUSD", quantity: "1e2", tradeType: "buy", price: "5e4", wantQty: 100, wantPrice: 50000},
		{name: "surrounding spaces", symbol: "BTCUSD", quantity: " 2 ", tradeType: "buy", price: "3", wantQty: 2, wantPrice: 3},
		{name: "missing symbol", quantity: "1", tradeType: "buy", price: "1", wantReason: ReasonMissingFields},
		{name: "missing quantity", symbol: "BTCUSD", tradeType: "buy", price: "1", wantReason: ReasonMissingFields},
		{name: "missing type", symbol: "BTCUSD", quantity: "1", price: "1", wantReason: ReasonMissingFields},
		{name: "missing price", symbol: "BTCUSD", quantity: "1", tradeType: "buy", wantReason: ReasonMissingFields},
		{name: "missing wins over bad quantity", quantity: "abc", tradeType: "hold", price: "0", wantReason: ReasonMissingFields},
		{name: "negative quantity", symbol: "BTCUSD", quantity: "-5", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "non-numeric quantity", symbol: "BTCUSD", quantity: "abc", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "zero quantity", symbol: "BTCUSD", quantity: "0", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "NaN quantity", symbol: "BTCUSD", quantity: "NaN", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "infinite quantity", symbol: "BTCUSD", quantity: "Infinity", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "overflowing quantity", symbol: "BTCUSD", quantity: "1e400", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "huge exponent quantity", symbol: "BTCUSD", quantity: "1e100000000", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "int32 exponent quantity", symbol: "BTCUSD", quantity: "1e2000000000", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "tiny exponent quantity", symbol: "BTCUSD", quantity: "1e-10000000", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "underflowing quantity", symbol: "BTCUSD", quantity: "1e-400", tradeType: "buy", price: "1", wantReason: ReasonInvalidQuantity},
		{name: "largest finite magnitude", symbol: "BTCUSD", quantity: "1e308", tradeType: "buy", price: "1", wantQty: 1e308, wantPrice: 1},
		{name: "subnormal quantity", symbol: "BTCUSD", quantity: "1e-320", tradeType: "buy", price: "1", wantQty: 1e-320, wantPrice: 1},
		{name: "huge exponent price", symbol: "BTCUSD", quantity: "1", tradeType: "buy", price: "9e99999999", wantReason: ReasonInvalidPrice},
		{name: "tiny exponent price", symbol: "BTCUSD", quantity: "1", tradeType: "buy", price: "5e-2000000000", wantReason: ReasonInvalidPrice},
		{name: "quantity checked before price", symbol: "BTCUSD", quantity: "-1", tradeType: "buy", price: "0", wantReason: ReasonInvalidQuantity},
		{name: "zero price", symbol: "BTCUSD", quantity: "1", tradeType: "buy", price: "0", wantReason: ReasonInvalidPrice},
		{name: "non-numeric price", symbol: "BTCUSD", quantity: "1", tradeType: "sell", price: "cheap", wantReason: ReasonInvalidPrice},
		{name: "price checked before type", symbol: "BTCUSD", quantity: "1", tradeType: "hold", price: "-3", wantReason: ReasonInvalidPrice},
		{name: "hold type", symbol: "BTCUSD", quantity: "1", tradeType: "hold", price: "1", wantReason: ReasonInvalidType},
		{name: "type is case-sensitive", symbol: "BTCUSD", quantity: "1", tradeType: "BUY", price: "1", wantReason: ReasonInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			got, err := Validate(tt.symbol, tt.quantity, tt.tradeType, tt.price)
			if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
				t.Errorf("Validate took %v", elapsed)
			}

			if tt.wantReason != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Validate() err = %v, want ValidationError", err)
				}
				if ve.Reason != tt.wantReason {
					t.Errorf("reason = %q, want %q", ve.Reason, tt.wantReason)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if got.Quantity != tt.wantQty {
				t.Errorf("quantity = %v, want %v", got.Quantity, tt.wantQty)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("price = %v, want %v", got.Price, tt.wantPrice)
			}
		})
	}
}

func TestTradeTypeMessage(t *testing.T) {
	want := `Invalid trade type. It must be "buy" or "sell".`
	if ReasonInvalidType != want {
		t.Errorf("ReasonInvalidType = %q, want %q", ReasonInvalidType, want)
	}
}
