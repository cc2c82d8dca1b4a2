package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/payments/helcim"
	"server/internal/pricing"
)

func TestDonationsCreateCryptoValuesAtQuote(t *testing.T) {
	app, donations := newTestApp(&fakeWorkflow{})
	app.Prices = &fakePrices{quote: pricing.Quote{Symbol: "ETH", USD: 2500, Source: "coingecko", FetchedAt: time.Now()}}
	router := testRouter(app)

	body := `{"charity_id":"char-1","amount":0.5,"token_symbol":"eth","chain":"ethereum","tx_hash":"0xabc"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations/crypto", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if len(donations.crypto) != 1 {
		t.Fatalf("donation not recorded")
	}
	d := donations.crypto[0]
	if d.USDValue != 1250 {
		t.Fatalf("usd value: got %v, want 1250", d.USDValue)
	}
	if d.TokenSymbol != "ETH" {
		t.Fatalf("symbol not normalized: %q", d.TokenSymbol)
	}
	if d.DonorID == nil || *d.DonorID != "vol-1" {
		t.Fatalf("donor id not attributed: %+v", d.DonorID)
	}
}

func TestDonationsCreateCryptoAnonymous(t *testing.T) {
	app, donations := newTestApp(&fakeWorkflow{})
	app.Prices = &fakePrices{quote: pricing.Quote{Symbol: "ETH", USD: 2500}}
	router := testRouter(app)

	body := `{"charity_id":"char-1","amount":1,"token_symbol":"ETH","chain":"ethereum","tx_hash":"0xdef"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations/crypto", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if donations.crypto[0].DonorID != nil {
		t.Fatalf("anonymous donation should have no donor id")
	}
}

func TestDonationsCreateCryptoPriceFeedDown(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	app.Prices = &fakePrices{err: fmt.Errorf("feed down")}
	router := testRouter(app)

	body := `{"charity_id":"char-1","amount":1,"token_symbol":"ETH","chain":"ethereum","tx_hash":"0xabc"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations/crypto", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want 502", rr.Code)
	}
}

func TestDonationsCreateFiatRecordsSettledTransaction(t *testing.T) {
	app, donations := newTestApp(&fakeWorkflow{})
	app.Payments = &fakePayments{tx: &helcim.Transaction{ID: "tx-9", Amount: 25.50, Currency: "usd", Status: "APPROVED"}}
	router := testRouter(app)

	body := `{"charity_id":"char-1","transaction_id":"tx-9"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations/fiat", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	d := donations.fiat[0]
	if d.AmountCents != 2550 {
		t.Fatalf("amount cents: got %d, want 2550", d.AmountCents)
	}
	if d.Currency != "USD" {
		t.Fatalf("currency not normalized: %q", d.Currency)
	}
	if d.PaymentRef != "tx-9" {
		t.Fatalf("payment ref: %q", d.PaymentRef)
	}
}

func TestDonationsCreateFiatDeclined(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	app.Payments = &fakePayments{err: fmt.Errorf("%w: declined", domain.ErrPaymentDeclined)}
	router := testRouter(app)

	body := `{"charity_id":"char-1","transaction_id":"tx-9"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/donations/fiat", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("got %d, want 402: %s", rr.Code, rr.Body.String())
	}
}

func TestDonationsCreateFiatUnconfigured(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodPost, "/v1/donations/fiat", strings.NewReader(`{"charity_id":"c","transaction_id":"t"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", rr.Code)
	}
}

func TestPaymentsCheckout(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	app.Payments = &fakePayments{session: &helcim.CheckoutSession{CheckoutToken: "ck", SecretToken: "st"}}
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/checkout", strings.NewReader(`{"amount_cents":5000}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "ck") {
		t.Fatalf("checkout token missing: %s", rr.Body.String())
	}
}

func TestLeaderboardRejectsUnknownKind(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?kind=cats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestStatsUser(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	app.Stats = &fakeStats{stats: &domain.UserStats{UserID: "vol-1", TotalDonatedUSD: 10}}
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/vol-1/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"total_donated_usd":10`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}
