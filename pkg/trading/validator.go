package trading

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Accepted carries the parsed numeric values of a valid submission.
type Accepted struct {
	Quantity float64
	Price    float64
}

// Validate checks a submission. Rules run in order and the first failure wins:
//
//  1. every field present
//  2. quantity is a finite number > 0
//  3. price is a finite number > 0
//  4. type is exactly "buy" or "sell"
//
// There are no upper bounds or precision limits.
func Validate(symbol, quantity, tradeType, price string) (Accepted, error) {
	if symbol == "" || quantity == "" || tradeType == "" || price == "" {
		return Accepted{}, reject(ReasonMissingFields)
	}

	qty, ok := parsePositive(quantity)
	if !ok {
		return Accepted{}, reject(ReasonInvalidQuantity)
	}

	px, ok := parsePositive(price)
	if !ok {
		return Accepted{}, reject(ReasonInvalidPrice)
	}

	if !TradeType(tradeType).Valid() {
		return Accepted{}, reject(ReasonInvalidType)
	}

	return Accepted{Quantity: qty, Price: px}, nil
}

// Decimal magnitude bounds for float64. A value with magnitude m lies in
// [10^(m-1), 10^m); above maxMagnitude it overflows to +Inf and below
// minMagnitude it rounds to zero.
const (
	maxMagnitude = 309
	minMagnitude = -323
)

// parsePositive parses s as a decimal and converts it to a finite float64.
// decimal rejects NaN and Infinity spellings. The magnitude is checked before
// conversion because converting a huge exponent allocates 10^exp.
func parsePositive(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	m := int64(d.Exponent()) + int64(d.NumDigits())
	if m > maxMagnitude || m < minMagnitude {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
