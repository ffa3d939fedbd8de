package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"polypaper/internal/domain"
	"polypaper/pkg/retrier"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultRequestsSec = 5
	defaultBurst       = 5
)

// MarketsClient fetches available markets from the REST API. Calls are rate
// limited and retried with backoff.
type MarketsClient struct {
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
	retrier    *retrier.Retrier
}

// NewMarketsClient creates a client for the markets API at apiURL.
func NewMarketsClient(apiURL string) *MarketsClient {
	return &MarketsClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsSec), defaultBurst),
		retrier:    retrier.New(retrier.WithMaxAttempts(3), retrier.WithInitialInterval(time.Second)),
	}
}

// FetchMarkets returns the current list of market descriptors.
func (c *MarketsClient) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	return retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) ([]domain.Market, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/markets", nil)
		if err != nil {
			return nil, errors.Wrap(err, "build markets request")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "fetch markets")
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, errors.Errorf("unexpected status fetching markets: %d", resp.StatusCode)
		}

		var markets []domain.Market
		if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
			return nil, errors.Wrap(err, "decode markets response")
		}
		return markets, nil
	})
}
