package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// coinGeckoIDs maps token symbols to CoinGecko coin ids.
var coinGeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"USDC":  "usd-coin",
	"SOL":   "solana",
}

// CoinGeckoClient fetches spot prices from the CoinGecko simple price API.
type CoinGeckoClient struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// CoinGeckoOptions configures a CoinGeckoClient.
type CoinGeckoOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewCoinGeckoClient creates a CoinGecko feed.
func NewCoinGeckoClient(opts CoinGeckoOptions) *CoinGeckoClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CoinGeckoClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, now: now}
}

// Price implements Feed.
func (c *CoinGeckoClient) Price(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	id, ok := coinGeckoIDs[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("pricing: unsupported symbol %q", symbol)
	}

	params := url.Values{}
	params.Set("ids", id)
	params.Set("vs_currencies", "usd")
	endpoint := c.baseURL + "/simple/price?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: coingecko: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("pricing: coingecko: status %d", resp.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("pricing: decode coingecko response: %w", err)
	}
	usd, ok := payload[id]["usd"]
	if !ok || usd <= 0 {
		return Quote{}, fmt.Errorf("pricing: coingecko: no usd price for %s", symbol)
	}

	return Quote{Symbol: symbol, USD: usd, Source: "coingecko", FetchedAt: c.now()}, nil
}

var _ Feed = (*CoinGeckoClient)(nil)
