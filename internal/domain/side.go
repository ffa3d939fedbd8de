package domain

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Side represents the direction of a simulated trade.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// side string constants to avoid magic strings
const (
	sideStringBuy  = "buy"
	sideStringSell = "sell"
)

// SideFromString parses a trade side from its wire representation.
func SideFromString(s string) (Side, error) {
	switch s {
	case sideStringBuy:
		return SideBuy, nil
	case sideStringSell:
		return SideSell, nil
	}
	return 0, errors.Errorf("unknown trade side: %q", s)
}

// MarshalJSON encodes the side as its wire string.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the side from its wire string.
func (s *Side) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	side, err := SideFromString(raw)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case SideBuy:
		return sideStringBuy
	case SideSell:
		return sideStringSell
	default:
		return "unknown"
	}
}
