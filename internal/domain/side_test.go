package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideFromString(t *testing.T) {
	side, err := SideFromString("buy")
	require.NoError(t, err)
	assert.Equal(t, SideBuy, side)

	side, err = SideFromString("sell")
	require.NoError(t, err)
	assert.Equal(t, SideSell, side)

	_, err = SideFromString("short")
	assert.Error(t, err)
}

func TestSide_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(SideSell)
	require.NoError(t, err)
	assert.Equal(t, `"sell"`, string(b))

	var side Side
	require.NoError(t, json.Unmarshal([]byte(`"buy"`), &side))
	assert.Equal(t, SideBuy, side)

	assert.Error(t, json.Unmarshal([]byte(`"hold"`), &side))
}
