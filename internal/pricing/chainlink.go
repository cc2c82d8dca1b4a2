package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// ChainlinkClient reads Chainlink aggregator answers exposed over a REST
// bridge (latestRoundData relayed off-chain per feed symbol). Used as the
// fallback when CoinGecko is unavailable.
type ChainlinkClient struct {
	feedURL string
	http    *http.Client
	now     func() time.Time
}

// ChainlinkOptions configures a ChainlinkClient.
type ChainlinkOptions struct {
	FeedURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewChainlinkClient creates a Chainlink aggregator feed.
func NewChainlinkClient(opts ChainlinkOptions) (*ChainlinkClient, error) {
	if strings.TrimSpace(opts.FeedURL) == "" {
		return nil, fmt.Errorf("pricing: chainlink feed URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ChainlinkClient{feedURL: strings.TrimRight(opts.FeedURL, "/"), http: httpClient, now: now}, nil
}

type chainlinkRound struct {
	Answer   int64 `json:"answer"`
	Decimals int   `json:"decimals"`
}

// Price implements Feed.
func (c *ChainlinkClient) Price(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	endpoint := fmt.Sprintf("%s/%s-usd", c.feedURL, strings.ToLower(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: chainlink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("pricing: chainlink: status %d", resp.StatusCode)
	}

	var round chainlinkRound
	if err := json.NewDecoder(resp.Body).Decode(&round); err != nil {
		return Quote{}, fmt.Errorf("pricing: decode chainlink response: %w", err)
	}
	if round.Answer <= 0 {
		return Quote{}, fmt.Errorf("pricing: chainlink: non-positive answer for %s", symbol)
	}
	decimals := round.Decimals
	if decimals == 0 {
		decimals = 8 // aggregator default for USD pairs
	}

	usd := float64(round.Answer) / math.Pow10(decimals)
	return Quote{Symbol: symbol, USD: usd, Source: "chainlink", FetchedAt: c.now()}, nil
}

var _ Feed = (*ChainlinkClient)(nil)
