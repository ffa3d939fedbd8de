package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTmp_Defaults(t *testing.T) {
	conf, err := fromTmp(configTmp{
		APIURL: "https://api.example.com",
		WSURL:  "wss://feed.example.com/ws",
	})
	require.NoError(t, err)

	assert.True(t, conf.InitialBalance.Equal(decimal.NewFromInt(1000)))
	assert.False(t, conf.FeedReconnect)
	assert.Equal(t, ":8080", conf.WebAddr)
	assert.Equal(t, "info", conf.LogLevel)
}

func TestFromTmp_Overrides(t *testing.T) {
	conf, err := fromTmp(configTmp{
		APIURL:         "https://api.example.com",
		WSURL:          "wss://feed.example.com/ws",
		InitialBalance: "2500.50",
		FeedReconnect:  true,
		WebAddr:        ":9999",
		LogLevel:       "debug",
	})
	require.NoError(t, err)

	assert.True(t, conf.InitialBalance.Equal(decimal.RequireFromString("2500.50")))
	assert.True(t, conf.FeedReconnect)
	assert.Equal(t, ":9999", conf.WebAddr)
	assert.Equal(t, "debug", conf.LogLevel)
}

func TestFromTmp_Invalid(t *testing.T) {
	t.Run("missing ws url", func(t *testing.T) {
		t.Setenv("POLYMARKET_WS_URL", "")
		_, err := fromTmp(configTmp{APIURL: "https://api.example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed URL")
	})

	t.Run("bad balance", func(t *testing.T) {
		_, err := fromTmp(configTmp{WSURL: "wss://feed.example.com/ws", InitialBalance: "lots"})
		require.Error(t, err)
	})

	t.Run("non-positive balance", func(t *testing.T) {
		_, err := fromTmp(configTmp{WSURL: "wss://feed.example.com/ws", InitialBalance: "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestGetYaml(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	data := []byte("api_url: https://api.example.com\nws_url: wss://feed.example.com/ws\ninitial_balance: \"500\"\nfeed_reconnect: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	conf, err := getYaml(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", conf.APIURL)
	assert.Equal(t, "wss://feed.example.com/ws", conf.WSURL)
	assert.True(t, conf.InitialBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, conf.FeedReconnect)
}
