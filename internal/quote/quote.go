// Package quote looks up current market prices for holdings.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"investmate/internal/models"
)

const (
	finnhubBaseURL = "https://finnhub.io/api/v1"

	// Crypto symbols typed without a market are priced against this pair.
	defaultCryptoExchange = "BINANCE"
	defaultCryptoQuote    = "USDT"

	demoPriceMin  = 100.0
	demoPriceSpan = 50.0
)

// Lookup returns the current price of a symbol. Implementations never fail:
// an unavailable quote is reported as 0.
type Lookup interface {
	CurrentPrice(ctx context.Context, symbol string, assetType models.AssetType) float64
}

// Normalize converts a user-entered symbol into the provider's form.
// Crypto symbols without an explicit market ("BTC") become
// "BINANCE:BTCUSDT"; symbols that already name one ("KRAKEN:ETHUSD")
// pass through. Stocks and ETFs are only uppercased.
func Normalize(symbol string, assetType models.AssetType) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if assetType == models.AssetTypeCrypto {
		if strings.Contains(symbol, ":") {
			return symbol
		}
		return defaultCryptoExchange + ":" + symbol + defaultCryptoQuote
	}

	return symbol
}

// finnhubQuote is the subset of the /quote response we read.
type finnhubQuote struct {
	Current *float64 `json:"c"`
}

// FinnhubClient fetches quotes from Finnhub.
type FinnhubClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string // overridable for tests
	log        *zap.SugaredLogger
	randFloat  func() float64
}

// NewFinnhubClient creates a Finnhub quote client. With an empty apiKey the
// client returns demo prices between 100 and 150 instead of calling out.
func NewFinnhubClient(httpClient *http.Client, apiKey string, log *zap.SugaredLogger) *FinnhubClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FinnhubClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    finnhubBaseURL,
		log:        log,
		randFloat:  rand.Float64,
	}
}

var _ Lookup = (*FinnhubClient)(nil)

// CurrentPrice returns the latest trade price for symbol, or 0 when the
// provider cannot answer.
func (c *FinnhubClient) CurrentPrice(ctx context.Context, symbol string, assetType models.AssetType) float64 {
	if c.apiKey == "" {
		return demoPriceMin + c.randFloat()*demoPriceSpan
	}

	providerSymbol := Normalize(symbol, assetType)

	price, err := c.fetch(ctx, providerSymbol)
	if err != nil {
		c.log.Warnw("quote lookup failed",
			"symbol", providerSymbol,
			"asset_type", string(assetType),
			"error", err,
		)
		return 0
	}
	return price
}

func (c *FinnhubClient) fetch(ctx context.Context, providerSymbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", providerSymbol)
	params.Set("token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quote?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var q finnhubQuote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	if q.Current == nil || *q.Current <= 0 {
		return 0, nil
	}
	return *q.Current, nil
}
