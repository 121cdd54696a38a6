package api

import (
	"bytes"
	"encoding/json"

	"github.com/uhyunpark/tradesweep/pkg/trading"
)

// ==============================
// REST Request Types
// ==============================

// SubmitOrderRequest is the payload for POST /orders.
// Fields are kept raw so that numbers may arrive as JSON numbers or strings
// and so that malformed values reach the validator instead of failing decode.
// Symbol and type must be JSON strings; any other value counts as missing.
type SubmitOrderRequest struct {
	Symbol   json.RawMessage `json:"symbol"`
	Quantity json.RawMessage `json:"quantity"`
	Price    json.RawMessage `json:"price"`
	Type     json.RawMessage `json:"type"`
}

// OrderRequest converts the raw payload into validator input.
func (r SubmitOrderRequest) OrderRequest() trading.OrderRequest {
	return trading.OrderRequest{
		Symbol:   stringField(r.Symbol),
		Quantity: fieldText(r.Quantity),
		Price:    fieldText(r.Price),
		Type:     stringField(r.Type),
	}
}

// ExecuteTradesRequest is the payload for POST /execute-trades.
type ExecuteTradesRequest struct {
	Symbol json.RawMessage `json:"symbol"`
}

// stringField returns the value of a raw JSON string, or "" for anything else.
func stringField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// fieldText returns the textual form of a raw JSON value.
// Absent and null values yield "", strings are unquoted and anything else
// (numbers, booleans, objects) is returned as its compact JSON text.
func fieldText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		return stringField(raw)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ==============================
// REST Response Types
// ==============================

// ErrorResponse is returned for all errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ==============================
// WebSocket Message Types
// ==============================

// WSSubscribeRequest is sent by client to subscribe to channels
type WSSubscribeRequest struct {
	Op       string   `json:"op"`       // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"` // e.g., ["fills:BTCUSD"]
}

// FillsUpdate is broadcast after a sweep that filled orders
type FillsUpdate struct {
	Type      string               `json:"type"` // "fills"
	Symbol    string               `json:"symbol"`
	Orders    []trading.TradeOrder `json:"orders"`
	Timestamp int64                `json:"timestamp"` // Unix milliseconds
}

func fillsChannel(symbol string) string {
	return "fills:" + symbol
}
