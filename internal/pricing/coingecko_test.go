package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCoinGeckoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "ethereum" {
			t.Errorf("ids: got %q, want ethereum", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ethereum":{"usd":3021.55}}`))
	}))
	defer srv.Close()

	client := NewCoinGeckoClient(CoinGeckoOptions{BaseURL: srv.URL, HTTPClient: srv.Client()})
	q, err := client.Price(context.Background(), "eth")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.USD != 3021.55 {
		t.Fatalf("usd: got %v, want 3021.55", q.USD)
	}
	if q.Symbol != "ETH" || q.Source != "coingecko" {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestCoinGeckoUnsupportedSymbol(t *testing.T) {
	client := NewCoinGeckoClient(CoinGeckoOptions{BaseURL: "http://127.0.0.1:0"})
	if _, err := client.Price(context.Background(), "DOGE2"); err == nil {
		t.Fatalf("expected error for unsupported symbol")
	}
}

func TestChainlinkPriceScalesDecimals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eth-usd" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":302155000000,"decimals":8}`))
	}))
	defer srv.Close()

	client, err := NewChainlinkClient(ChainlinkOptions{FeedURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewChainlinkClient: %v", err)
	}
	q, err := client.Price(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.USD != 3021.55 {
		t.Fatalf("usd: got %v, want 3021.55", q.USD)
	}
	if q.Source != "chainlink" {
		t.Fatalf("source: got %q, want chainlink", q.Source)
	}
}
