package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote holds the latest known quote fields for one market. Fields stay
// invalid until the first feed update that carries them.
type Quote struct {
	BestBid   decimal.NullDecimal `json:"best_bid"`
	BestAsk   decimal.NullDecimal `json:"best_ask"`
	LastPrice decimal.NullDecimal `json:"last_price"`
}

// Snapshot is the latest known market state for a single market id.
type Snapshot struct {
	MarketID  string    `json:"market_id"`
	Quote     Quote     `json:"quote"`
	UpdatedAt time.Time `json:"updated_at"`
}
