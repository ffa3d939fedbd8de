package domain

import "github.com/shopspring/decimal"

// Market is a descriptor of a tradable market returned by the markets API.
type Market struct {
	ID       string              `json:"id"`
	Question string              `json:"question"`
	Outcomes []string            `json:"outcomes"`
	Active   bool                `json:"active"`
	Volume   decimal.NullDecimal `json:"volume"`
}
