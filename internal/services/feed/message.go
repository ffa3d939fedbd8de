package feed

import (
	"github.com/shopspring/decimal"

	"polypaper/internal/domain"
)

const messageTypeMarketUpdate = "market_update"

// subscribeRequest is sent once after the connection is established.
type subscribeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

// inboundMessage is the loosely-typed envelope of a feed message. Only
// market updates carry meaning; everything else is discarded by type.
type inboundMessage struct {
	Type      string              `json:"type"`
	MarketID  string              `json:"market_id"`
	BestBid   decimal.NullDecimal `json:"best_bid"`
	BestAsk   decimal.NullDecimal `json:"best_ask"`
	LastPrice decimal.NullDecimal `json:"last_price"`
}

// isMarketUpdate reports whether the message should reach the market store.
func (m inboundMessage) isMarketUpdate() bool {
	return m.Type == messageTypeMarketUpdate && m.MarketID != ""
}

func (m inboundMessage) quote() domain.Quote {
	return domain.Quote{
		BestBid:   m.BestBid,
		BestAsk:   m.BestAsk,
		LastPrice: m.LastPrice,
	}
}
