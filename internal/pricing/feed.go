// Package pricing resolves token spot prices in USD for donation valuation.
package pricing

import (
	"context"
	"time"
)

// Quote is a spot price observation for one token symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	USD       float64   `json:"usd"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Feed resolves the current USD price of a token symbol.
type Feed interface {
	Price(ctx context.Context, symbol string) (Quote, error)
}
