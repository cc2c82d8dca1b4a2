// Package helcim wraps the Helcim REST API calls the donation flow needs:
// initializing a HelcimPay checkout and verifying a settled card transaction.
package helcim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

// Options configures a Client.
type Options struct {
	APIToken   string
	BaseURL    string
	HTTPClient *http.Client
}

// Client is a minimal Helcim API client.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Helcim client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIToken) == "" {
		return nil, fmt.Errorf("helcim: api token is required")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.helcim.com/v2"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		token:   opts.APIToken,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// CheckoutSession is the pair of tokens HelcimPay.js needs on the client side.
type CheckoutSession struct {
	CheckoutToken string `json:"checkoutToken"`
	SecretToken   string `json:"secretToken"`
}

// Transaction is the subset of a card transaction the donation flow records.
type Transaction struct {
	ID          string  `json:"transactionId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	CardToken   string  `json:"cardToken"`
	DateCreated string  `json:"dateCreated"`
}

// Approved reports whether the transaction settled.
func (t Transaction) Approved() bool {
	return strings.EqualFold(t.Status, "APPROVED")
}

// InitializeCheckout opens a HelcimPay checkout session for the given amount.
func (c *Client) InitializeCheckout(ctx context.Context, amountCents int64, currency string) (*CheckoutSession, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("helcim: amount must be positive")
	}
	payload := map[string]any{
		"paymentType": "purchase",
		"amount":      float64(amountCents) / 100,
		"currency":    strings.ToUpper(currency),
	}
	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/helcim-pay/initialize", payload, &session); err != nil {
		return nil, err
	}
	if session.CheckoutToken == "" {
		return nil, fmt.Errorf("helcim: initialize returned no checkout token")
	}
	return &session, nil
}

// VerifyTransaction confirms a card transaction settled before the donation
// is recorded. Declined transactions surface domain.ErrPaymentDeclined.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, fmt.Errorf("helcim: transaction id is required")
	}
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, "/card-transactions/"+transactionID, nil, &tx); err != nil {
		return nil, err
	}
	if !tx.Approved() {
		return nil, fmt.Errorf("%w: transaction %s status %s", domain.ErrPaymentDeclined, transactionID, tx.Status)
	}
	return &tx, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("helcim: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("helcim: build request: %w", err)
	}
	req.Header.Set("api-token", c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("helcim: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("helcim: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("helcim: decode response: %w", err)
	}
	return nil
}
