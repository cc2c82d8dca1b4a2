package handlers

import (
	"encoding/json"
	"net/http"
)

type checkoutPayload struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// PaymentsCheckout opens a HelcimPay session; the frontend renders the
// checkout with the returned tokens.
func (a *App) PaymentsCheckout(w http.ResponseWriter, r *http.Request) {
	if a.Payments == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "card payments not configured")
		return
	}
	var req checkoutPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.AmountCents <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount_cents must be positive")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	session, err := a.Payments.InitializeCheckout(r.Context(), req.AmountCents, req.Currency)
	if err != nil {
		a.Log.Error().Err(err).Msg("http: checkout initialize failed")
		a.error(w, http.StatusBadGateway, "checkout_failed", "could not open checkout session")
		return
	}
	a.json(w, http.StatusOK, session)
}
