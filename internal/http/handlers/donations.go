package handlers

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

type cryptoDonationPayload struct {
	CharityID   string  `json:"charity_id"`
	Amount      float64 `json:"amount"`
	TokenSymbol string  `json:"token_symbol"`
	Chain       string  `json:"chain"`
	TxHash      string  `json:"tx_hash"`
}

func (a *App) DonationsCreateCrypto(w http.ResponseWriter, r *http.Request) {
	var req cryptoDonationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CharityID == "" || req.TxHash == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "charity_id and tx_hash required")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	quote, err := a.Prices.Price(r.Context(), req.TokenSymbol)
	if err != nil {
		a.Log.Error().Err(err).Str("symbol", req.TokenSymbol).Msg("http: price lookup failed")
		a.error(w, http.StatusBadGateway, "price_unavailable", "could not price token")
		return
	}

	donation := &domain.Donation{
		ID:          uuid.NewString(),
		CharityID:   req.CharityID,
		Amount:      req.Amount,
		TokenSymbol: strings.ToUpper(req.TokenSymbol),
		Chain:       req.Chain,
		USDValue:    req.Amount * quote.USD,
		TxHash:      req.TxHash,
		CreatedAt:   time.Now().UTC(),
	}
	if userID := a.currentUserID(r); userID != "" {
		donation.DonorID = &userID
	}
	if err := a.Donations.CreateCrypto(r.Context(), donation); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":           donation.ID,
		"usd_value":    donation.USDValue,
		"price_source": quote.Source,
	})
}

type fiatDonationPayload struct {
	CharityID     string `json:"charity_id"`
	TransactionID string `json:"transaction_id"`
}

// DonationsCreateFiat records a card donation after confirming the
// transaction settled with the payment processor.
func (a *App) DonationsCreateFiat(w http.ResponseWriter, r *http.Request) {
	if a.Payments == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "card payments not configured")
		return
	}
	var req fiatDonationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CharityID == "" || req.TransactionID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "charity_id and transaction_id required")
		return
	}

	tx, err := a.Payments.VerifyTransaction(r.Context(), req.TransactionID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	donation := &domain.FiatDonation{
		ID:           uuid.NewString(),
		CharityID:    req.CharityID,
		AmountCents:  int64(math.Round(tx.Amount * 100)),
		Currency:     strings.ToUpper(tx.Currency),
		PaymentRef:   tx.ID,
		DonorCountry: a.donorCountry(r),
		CreatedAt:    time.Now().UTC(),
	}
	if userID := a.currentUserID(r); userID != "" {
		donation.DonorID = &userID
	}
	if err := a.Donations.CreateFiat(r.Context(), donation); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":           donation.ID,
		"amount_cents": donation.AmountCents,
		"currency":     donation.Currency,
	})
}

func (a *App) DonationsRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	crypto, err := a.Donations.ListRecent(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	fiat, err := a.Donations.ListRecentFiat(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}

	cryptoItems := make([]map[string]any, 0, len(crypto))
	for _, d := range crypto {
		cryptoItems = append(cryptoItems, map[string]any{
			"id":           d.ID,
			"charity_id":   d.CharityID,
			"amount":       d.Amount,
			"token_symbol": d.TokenSymbol,
			"chain":        d.Chain,
			"usd_value":    d.USDValue,
			"created_at":   d.CreatedAt,
		})
	}
	fiatItems := make([]map[string]any, 0, len(fiat))
	for _, d := range fiat {
		fiatItems = append(fiatItems, map[string]any{
			"id":           d.ID,
			"charity_id":   d.CharityID,
			"amount_cents": d.AmountCents,
			"currency":     d.Currency,
			"country":      d.DonorCountry,
			"created_at":   d.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"crypto": cryptoItems, "fiat": fiatItems})
}

// donorCountry attributes a donation to a country from the client IP.
// Best effort; empty when no GeoIP database is configured.
func (a *App) donorCountry(r *http.Request) string {
	if a.Geo == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	code, err := a.Geo.CountryCode(host)
	if err != nil {
		return ""
	}
	return code
}
