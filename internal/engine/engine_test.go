package engine

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"polypaper/internal/domain"
	"polypaper/internal/services/ledger"
	"polypaper/internal/services/market"
)

type stubFeed struct {
	err error
}

func (f *stubFeed) Run(ctx context.Context) error {
	<-ctx.Done()
	if f.err != nil {
		return f.err
	}
	return ctx.Err()
}

type stubMarketsFetcher struct {
	markets []domain.Market
	err     error
}

func (s *stubMarketsFetcher) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	return s.markets, s.err
}

func newTestEngine(fetcher MarketsFetcher) (*Engine, *market.Store) {
	store := market.NewStore()
	led := ledger.New(decimal.NewFromInt(1000), zap.NewNop())
	return New(store, led, &stubFeed{}, fetcher, zap.NewNop()), store
}

func TestEngine_SimulateTradeWithoutSnapshot(t *testing.T) {
	e, _ := newTestEngine(nil)

	record, err := e.SimulateTrade("m1", domain.SideBuy, decimal.NewFromInt(10), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "m1", record.MarketID)

	summary, err := e.PortfolioSummary()
	require.NoError(t, err)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(990)))
}

func TestEngine_PortfolioSummaryEmpty(t *testing.T) {
	e, _ := newTestEngine(nil)

	_, err := e.PortfolioSummary()
	assert.ErrorIs(t, err, ledger.ErrNoTrades)
}

func TestEngine_MarketsAbsentOnFailure(t *testing.T) {
	e, _ := newTestEngine(&stubMarketsFetcher{err: errors.New("network down")})

	assert.Nil(t, e.Markets(context.Background()))
}

func TestEngine_MarketsReturnsDescriptors(t *testing.T) {
	e, _ := newTestEngine(&stubMarketsFetcher{markets: []domain.Market{{ID: "m1", Question: "q"}}})

	markets := e.Markets(context.Background())
	require.Len(t, markets, 1)
	assert.Equal(t, "m1", markets[0].ID)
}

func TestEngine_SnapshotsReflectStore(t *testing.T) {
	e, store := newTestEngine(nil)

	store.ApplyUpdate("m1", domain.Quote{LastPrice: decimal.NewNullDecimal(decimal.RequireFromString("0.5"))})

	snap, ok := e.Snapshot("m1")
	require.True(t, ok)
	assert.True(t, snap.Quote.LastPrice.Decimal.Equal(decimal.RequireFromString("0.5")))
	assert.Len(t, e.Snapshots(), 1)
}

func TestEngine_RunStopsCleanlyOnCancel(t *testing.T) {
	e, _ := newTestEngine(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	cancel()
	err := <-done
	assert.NoError(t, err)
}

func TestEngine_RunReportsFeedFailure(t *testing.T) {
	store := market.NewStore()
	led := ledger.New(decimal.NewFromInt(1000), zap.NewNop())
	feedErr := errors.New("connection reset")
	e := New(store, led, &stubFeed{err: feedErr}, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, feedErr)
}
