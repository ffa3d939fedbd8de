package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"polypaper/internal/domain"
)

var (
	// ErrInsufficientBalance rejects a buy whose cost exceeds the virtual balance.
	ErrInsufficientBalance = errors.New("insufficient virtual balance")
	// ErrInsufficientPosition rejects a sell larger than the held position.
	ErrInsufficientPosition = errors.New("insufficient position to sell")
	// ErrNoTrades signals an empty trade history.
	ErrNoTrades = errors.New("no trades yet")
)

// Ledger holds the virtual balance, per-market positions and the append-only
// trade history of a simulated session. All mutation goes through
// SimulateTrade under a single lock.
type Ledger struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	balance   decimal.Decimal
	positions map[string]decimal.Decimal
	trades    []domain.TradeRecord
}

// New creates a ledger with the given starting virtual balance.
func New(initialBalance decimal.Decimal, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		logger:    logger,
		balance:   initialBalance,
		positions: make(map[string]decimal.Decimal),
	}
}

// SimulateTrade executes a simulated buy or sell against the virtual balance.
// A buy is rejected with ErrInsufficientBalance when its cost exceeds the
// balance; a sell is rejected with ErrInsufficientPosition when the amount
// exceeds the held position. Rejections leave the ledger untouched.
func (l *Ledger) SimulateTrade(marketID string, side domain.Side, amount, price decimal.Decimal) (domain.TradeRecord, error) {
	if marketID == "" {
		return domain.TradeRecord{}, errors.New("market id must not be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.TradeRecord{}, errors.Errorf("trade amount must be positive, got %s", amount.String())
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return domain.TradeRecord{}, errors.Errorf("trade price must be positive, got %s", price.String())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	total := amount.Mul(price)

	switch side {
	case domain.SideBuy:
		if total.GreaterThan(l.balance) {
			return domain.TradeRecord{}, errors.Wrapf(ErrInsufficientBalance,
				"have %s need %s", l.balance.String(), total.String())
		}
		l.balance = l.balance.Sub(total)
		l.positions[marketID] = l.positions[marketID].Add(amount)
	case domain.SideSell:
		position := l.positions[marketID]
		if amount.GreaterThan(position) {
			return domain.TradeRecord{}, errors.Wrapf(ErrInsufficientPosition,
				"have %s need %s", position.String(), amount.String())
		}
		l.balance = l.balance.Add(total)
		l.positions[marketID] = position.Sub(amount)
	default:
		return domain.TradeRecord{}, errors.Errorf("unknown trade side: %d", side)
	}

	record := domain.TradeRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		MarketID:  marketID,
		Side:      side,
		Amount:    amount,
		Price:     price,
		Total:     total,
	}
	l.trades = append(l.trades, record)

	l.logger.Info("simulated trade executed",
		zap.String("id", record.ID),
		zap.String("market_id", marketID),
		zap.String("side", side.String()),
		zap.String("amount", amount.String()),
		zap.String("price", price.String()),
		zap.String("total", total.String()),
		zap.String("balance", l.balance.String()))

	return record, nil
}

// Balance returns the current virtual balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balance
}

// Position returns the held quantity for marketID, zero when never traded.
func (l *Ledger) Position(marketID string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.positions[marketID]
}

// Trades returns a copy of the trade history in submission order.
func (l *Ledger) Trades() []domain.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.TradeRecord, len(l.trades))
	copy(out, l.trades)
	return out
}

// PortfolioSummary aggregates balance, positions and traded volume.
// Returns ErrNoTrades when the history is empty.
func (l *Ledger) PortfolioSummary() (domain.PortfolioSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.trades) == 0 {
		return domain.PortfolioSummary{}, ErrNoTrades
	}

	positions := make(map[string]decimal.Decimal, len(l.positions))
	for id, qty := range l.positions {
		positions[id] = qty
	}

	volume := decimal.Zero
	for _, trade := range l.trades {
		volume = volume.Add(trade.Total)
	}

	return domain.PortfolioSummary{
		Balance:     l.balance,
		Positions:   positions,
		TotalTrades: len(l.trades),
		TotalVolume: volume,
	}, nil
}
