package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	defaultInitialBalance = "1000"
	defaultWebAddr        = ":8080"
	defaultLogLevel       = "info"
)

// Config holds the paper-trading session settings.
type Config struct {
	// APIURL base URL of the markets REST API.
	APIURL string
	// WSURL websocket URL of the streaming market feed.
	WSURL string
	// InitialBalance starting virtual balance of the session.
	InitialBalance decimal.Decimal
	// FeedReconnect redial the feed with backoff after a broken session.
	FeedReconnect bool
	// WebAddr listen address of the status HTTP server, empty disables it.
	WebAddr string
	// LogLevel zap level: debug, info, warn, error.
	LogLevel string
}

type configTmp struct {
	APIURL         string `yaml:"api_url"`
	WSURL          string `yaml:"ws_url"`
	InitialBalance string `yaml:"initial_balance,omitempty"`
	FeedReconnect  bool   `yaml:"feed_reconnect,omitempty"`
	WebAddr        string `yaml:"web_addr,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// Get loads the configuration from the yaml file given by --config, falling
// back to CLI flags. Endpoint URLs default to the POLYMARKET_API_URL and
// POLYMARKET_WS_URL environment variables when not set explicitly.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	apiURL := flag.String("api-url", "", "markets REST API base URL")
	wsURL := flag.String("ws-url", "", "market feed websocket URL")
	balance := flag.String("balance", defaultInitialBalance, "initial virtual balance")
	reconnect := flag.Bool("reconnect", false, "redial the feed with backoff after a broken session")
	webAddr := flag.String("web-addr", defaultWebAddr, "status server listen address, empty to disable")
	logLevel := flag.String("log-level", defaultLogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	initialBalance, err := decimal.NewFromString(*balance)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --balance provided, --balance=%s: %w", *balance, err)
	}

	conf := Config{
		APIURL:         *apiURL,
		WSURL:          *wsURL,
		InitialBalance: initialBalance,
		FeedReconnect:  *reconnect,
		WebAddr:        *webAddr,
		LogLevel:       *logLevel,
	}
	return finalize(conf)
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}
	return fromTmp(tmp)
}

func fromTmp(tmp configTmp) (Config, error) {
	if tmp.InitialBalance == "" {
		tmp.InitialBalance = defaultInitialBalance
	}
	initialBalance, err := decimal.NewFromString(tmp.InitialBalance)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'initial_balance' param in yaml config: %s, error: %w", tmp.InitialBalance, err)
	}

	conf := Config{
		APIURL:         tmp.APIURL,
		WSURL:          tmp.WSURL,
		InitialBalance: initialBalance,
		FeedReconnect:  tmp.FeedReconnect,
		WebAddr:        tmp.WebAddr,
		LogLevel:       tmp.LogLevel,
	}
	if conf.WebAddr == "" {
		conf.WebAddr = defaultWebAddr
	}
	if conf.LogLevel == "" {
		conf.LogLevel = defaultLogLevel
	}
	return finalize(conf)
}

func finalize(conf Config) (Config, error) {
	if conf.APIURL == "" {
		conf.APIURL = os.Getenv("POLYMARKET_API_URL")
	}
	if conf.WSURL == "" {
		conf.WSURL = os.Getenv("POLYMARKET_WS_URL")
	}

	if conf.WSURL == "" {
		return Config{}, fmt.Errorf("market feed URL is not set, use --ws-url, the 'ws_url' yaml param or POLYMARKET_WS_URL")
	}
	if !conf.InitialBalance.IsPositive() {
		return Config{}, fmt.Errorf("initial balance must be positive, got %s", conf.InitialBalance.String())
	}

	return conf, nil
}
