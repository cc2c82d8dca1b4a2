package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type scriptedFeed struct {
	quotes map[string]Quote
	err    error
	calls  int
}

func (f *scriptedFeed) Price(_ context.Context, symbol string) (Quote, error) {
	f.calls++
	if f.err != nil {
		return Quote{}, f.err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return Quote{}, errors.New("unknown symbol")
	}
	return q, nil
}

func TestPriceCachesWithinTTL(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	primary := &scriptedFeed{quotes: map[string]Quote{
		"ETH": {Symbol: "ETH", USD: 3000, Source: "coingecko", FetchedAt: now},
	}}
	svc, err := NewService(ServiceOptions{
		Primary: primary,
		TTL:     time.Minute,
		Now:     func() time.Time { return now },
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	for i := 0; i < 3; i++ {
		q, err := svc.Price(context.Background(), "eth")
		if err != nil {
			t.Fatalf("Price: %v", err)
		}
		if q.USD != 3000 {
			t.Fatalf("usd: got %v, want 3000", q.USD)
		}
	}
	if primary.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", primary.calls)
	}
}

func TestPriceRefetchesAfterTTL(t *testing.T) {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	current := base
	primary := &scriptedFeed{quotes: map[string]Quote{
		"ETH": {Symbol: "ETH", USD: 3000, FetchedAt: base},
	}}
	svc, err := NewService(ServiceOptions{
		Primary: primary,
		TTL:     time.Minute,
		Now:     func() time.Time { return current },
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Price(context.Background(), "ETH"); err != nil {
		t.Fatalf("Price: %v", err)
	}
	current = base.Add(2 * time.Minute)
	primary.quotes["ETH"] = Quote{Symbol: "ETH", USD: 3100, FetchedAt: current}
	q, err := svc.Price(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.USD != 3100 {
		t.Fatalf("expected refetched price 3100, got %v", q.USD)
	}
	if primary.calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", primary.calls)
	}
}

func TestPriceFallsBackWhenPrimaryFails(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	primary := &scriptedFeed{err: errors.New("rate limited")}
	fallback := &scriptedFeed{quotes: map[string]Quote{
		"LINK": {Symbol: "LINK", USD: 14.5, Source: "chainlink", FetchedAt: now},
	}}
	svc, err := NewService(ServiceOptions{
		Primary:  primary,
		Fallback: fallback,
		TTL:      time.Minute,
		Now:      func() time.Time { return now },
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	q, err := svc.Price(context.Background(), "LINK")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.Source != "chainlink" {
		t.Fatalf("expected fallback quote, got source %q", q.Source)
	}
}

func TestPriceErrorsWithoutFallback(t *testing.T) {
	svc, err := NewService(ServiceOptions{
		Primary: &scriptedFeed{err: errors.New("down")},
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := svc.Price(context.Background(), "ETH"); err == nil {
		t.Fatalf("expected error when primary fails and no fallback configured")
	}
}
