package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is an accepted simulated trade. Records are immutable once
// appended to the ledger history.
type TradeRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	MarketID  string          `json:"market_id"`
	Side      Side            `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// String returns a human-readable string representation.
func (t TradeRecord) String() string {
	return fmt.Sprintf("%s %s amount: %s price: %s total: %s",
		t.MarketID, t.Side.String(), t.Amount.String(), t.Price.String(), t.Total.String())
}
