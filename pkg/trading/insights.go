package trading

// Canned payloads for the analysis, risk and rebalancing endpoints.
// They do not depend on stored orders or on the request.

type TrendSnapshot struct {
	Trend      string `json:"trend"`
	Volatility string `json:"volatility"`
}

type RiskLimits struct {
	StopLoss     float64 `json:"stopLoss"`
	TrailingStop bool    `json:"trailingStop"`
}

// MarketAnalysis returns the fixed per-symbol trend table.
func MarketAnalysis() map[string]TrendSnapshot {
	return map[string]TrendSnapshot{
		"BTCUSD": {Trend: "bullish", Volatility: "high"},
		"ETHUSD": {Trend: "bearish", Volatility: "medium"},
	}
}

// RiskManagement returns the fixed per-symbol stop settings.
func RiskManagement() map[string]RiskLimits {
	return map[string]RiskLimits{
		"BTCUSD": {StopLoss: 48000, TrailingStop: true},
		"ETHUSD": {StopLoss: 1800, TrailingStop: false},
	}
}

// RebalancedPortfolio returns the fixed target allocation weights.
func RebalancedPortfolio() map[string]float64 {
	return map[string]float64{
		"BTC": 0.6,
		"ETH": 0.4,
	}
}
