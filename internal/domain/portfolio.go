package domain

import "github.com/shopspring/decimal"

// PortfolioSummary is a point-in-time view of the simulated session.
type PortfolioSummary struct {
	Balance     decimal.Decimal            `json:"balance"`
	Positions   map[string]decimal.Decimal `json:"positions"`
	TotalTrades int                        `json:"total_trades"`
	TotalVolume decimal.Decimal            `json:"total_volume"`
}
