package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"polypaper/internal/domain"
	"polypaper/pkg/retrier"
)

const handshakeTimeout = 10 * time.Second

var subscribeChannels = []string{"markets", "trades"}

// Store receives well-formed market updates from the feed.
type Store interface {
	ApplyUpdate(marketID string, quote domain.Quote)
}

// Client maintains a streaming subscription to the market feed and projects
// market_update messages into the store. A transport error ends the receive
// loop; with reconnect enabled the client dials again with backoff instead
// of giving up.
type Client struct {
	url       string
	store     Store
	logger    *zap.Logger
	reconnect bool
	backoff   *retrier.Retrier
	dialer    websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// Option configures the Client.
type Option func(*Client)

// WithReconnect enables redialing with backoff after a broken session.
func WithReconnect() Option {
	return func(c *Client) {
		c.reconnect = true
	}
}

// WithBackoff overrides the reconnect backoff policy.
func WithBackoff(r *retrier.Retrier) Option {
	return func(c *Client) {
		if r != nil {
			c.backoff = r
		}
	}
}

// NewClient creates a feed client for the given websocket URL.
func NewClient(url string, store Store, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		url:     url,
		store:   store,
		logger:  logger,
		backoff: retrier.New(retrier.WithInitialInterval(time.Second), retrier.WithMaxAttempts(6)),
		dialer:  websocket.Dialer{HandshakeTimeout: handshakeTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run connects to the feed and blocks in the receive loop until the
// connection breaks or ctx is cancelled. With reconnect enabled, broken
// sessions are redialed with backoff until the attempts are exhausted.
func (c *Client) Run(ctx context.Context) error {
	if !c.reconnect {
		return c.connectAndReceive(ctx)
	}

	return c.backoff.Do(ctx, func(ctx context.Context) error {
		err := c.connectAndReceive(ctx)
		if err != nil && ctx.Err() == nil {
			c.logger.Warn("feed session ended, reconnecting", zap.Error(err))
		}
		return err
	})
}

func (c *Client) connectAndReceive(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.Wrap(err, "dial feed")
	}
	c.setConn(conn)
	defer c.closeConn()

	// unblock the read when ctx is cancelled
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			c.closeConn()
		case <-watchDone:
		}
	}()

	if err := conn.WriteJSON(subscribeRequest{Type: "subscribe", Channels: subscribeChannels}); err != nil {
		return errors.Wrap(err, "send subscribe request")
	}
	c.logger.Info("subscribed to market feed", zap.String("url", c.url), zap.Strings("channels", subscribeChannels))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "receive feed message")
		}
		c.handleMessage(data)
	}
}

// handleMessage projects a single inbound message into the store. Messages
// that do not decode or are not market updates are discarded.
func (c *Client) handleMessage(data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Debug("discarding undecodable feed message", zap.Error(err))
		return
	}
	if !msg.isMarketUpdate() {
		c.logger.Debug("discarding feed message", zap.String("type", msg.Type))
		return
	}

	c.store.ApplyUpdate(msg.MarketID, msg.quote())

	c.logger.Info("market update",
		zap.String("market_id", msg.MarketID),
		zap.String("best_bid", formatQuoteField(msg.BestBid)),
		zap.String("best_ask", formatQuoteField(msg.BestAsk)),
		zap.String("last_price", formatQuoteField(msg.LastPrice)))
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func formatQuoteField(d decimal.NullDecimal) string {
	if !d.Valid {
		return "n/a"
	}
	return d.Decimal.String()
}
