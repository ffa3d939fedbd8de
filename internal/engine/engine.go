package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"polypaper/config"
	"polypaper/internal/clients"
	"polypaper/internal/domain"
	"polypaper/internal/services/feed"
	"polypaper/internal/services/ledger"
	"polypaper/internal/services/market"
)

// Feed drives the background market-update stream.
type Feed interface {
	Run(ctx context.Context) error
}

// MarketsFetcher fetches the list of available markets.
type MarketsFetcher interface {
	FetchMarkets(ctx context.Context) ([]domain.Market, error)
}

// Engine owns the market state store, the simulated ledger and the feed
// lifecycle, and exposes the trading operations to callers.
type Engine struct {
	store   *market.Store
	ledger  *ledger.Ledger
	feed    Feed
	markets MarketsFetcher
	logger  *zap.Logger
}

// New wires an engine from already-built components.
func New(store *market.Store, led *ledger.Ledger, f Feed, markets MarketsFetcher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:   store,
		ledger:  led,
		feed:    f,
		markets: markets,
		logger:  logger,
	}
}

// NewFromConfig builds the store, ledger, feed client and markets client
// for the given configuration.
func NewFromConfig(conf config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	store := market.NewStore()
	led := ledger.New(conf.InitialBalance, logger.Named("ledger"))

	var feedOpts []feed.Option
	if conf.FeedReconnect {
		feedOpts = append(feedOpts, feed.WithReconnect())
	}
	feedClient := feed.NewClient(conf.WSURL, store, logger.Named("feed"), feedOpts...)

	return New(store, led, feedClient, clients.NewMarketsClient(conf.APIURL), logger)
}

// Run drives the background feed loop and blocks until it ends or ctx is
// cancelled. A broken feed stops market-state freshness but never corrupts
// ledger state, so the error is reported rather than escalated.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("starting market feed loop")

	err := e.feed.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		e.logger.Info("market feed loop stopped")
		return nil
	default:
		e.logger.Error("market feed loop terminated", zap.Error(err))
		return errors.Wrap(err, "market feed loop")
	}
}

// SimulateTrade executes a simulated trade against the virtual ledger. The
// live snapshot is informational only; markets never seen on the feed are
// still tradable at the caller-provided price.
func (e *Engine) SimulateTrade(marketID string, side domain.Side, amount, price decimal.Decimal) (domain.TradeRecord, error) {
	if _, ok := e.store.Get(marketID); !ok {
		e.logger.Debug("simulating trade on market without live snapshot", zap.String("market_id", marketID))
	}
	return e.ledger.SimulateTrade(marketID, side, amount, price)
}

// PortfolioSummary returns the ledger summary, ledger.ErrNoTrades when the
// session has no trades yet.
func (e *Engine) PortfolioSummary() (domain.PortfolioSummary, error) {
	return e.ledger.PortfolioSummary()
}

// Markets fetches available markets. Fetch failures degrade to an absent
// result: the error is logged and a nil slice returned.
func (e *Engine) Markets(ctx context.Context) []domain.Market {
	if e.markets == nil {
		return nil
	}
	markets, err := e.markets.FetchMarkets(ctx)
	if err != nil {
		e.logger.Warn("failed to fetch markets", zap.Error(err))
		return nil
	}
	return markets
}

// Snapshot returns the latest known snapshot for marketID.
func (e *Engine) Snapshot(marketID string) (domain.Snapshot, bool) {
	return e.store.Get(marketID)
}

// Snapshots returns all snapshots seen on the feed so far.
func (e *Engine) Snapshots() []domain.Snapshot {
	return e.store.Snapshots()
}
