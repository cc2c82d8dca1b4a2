package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/payments/helcim"
	"server/internal/pricing"
	"server/internal/validation"
)

// fakeWorkflow returns canned records and captures the last call.
type fakeWorkflow struct {
	rec     *domain.SelfReportedHours
	req     *domain.ValidationRequest
	queue   []domain.PendingQueueItem
	err     error
	lastIn  validation.Input
	lastOrg string
}

func (f *fakeWorkflow) Submit(_ context.Context, in validation.Input) (*domain.SelfReportedHours, error) {
	f.lastIn = in
	return f.rec, f.err
}

func (f *fakeWorkflow) Get(context.Context, string, string) (*domain.SelfReportedHours, error) {
	return f.rec, f.err
}

func (f *fakeWorkflow) List(context.Context, string, int) ([]domain.SelfReportedHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		return nil, nil
	}
	return []domain.SelfReportedHours{*f.rec}, nil
}

func (f *fakeWorkflow) Update(_ context.Context, _, _ string, in validation.Input) (*domain.SelfReportedHours, error) {
	f.lastIn = in
	return f.rec, f.err
}

func (f *fakeWorkflow) Delete(context.Context, string, string) error { return f.err }

func (f *fakeWorkflow) RequestValidation(_ context.Context, _, _, orgID string) (*domain.ValidationRequest, error) {
	f.lastOrg = orgID
	return f.req, f.err
}

func (f *fakeWorkflow) Queue(context.Context, string, int) ([]domain.PendingQueueItem, error) {
	return f.queue, f.err
}

func (f *fakeWorkflow) Respond(context.Context, string, string, bool, string, string) (*domain.ValidationRequest, error) {
	return f.req, f.err
}

func (f *fakeWorkflow) Resubmit(context.Context, string, string) (*domain.ValidationRequest, error) {
	return f.req, f.err
}

func (f *fakeWorkflow) Cancel(context.Context, string, string) error { return f.err }

type fakeStats struct {
	stats   *domain.UserStats
	entries []domain.LeaderboardEntry
	summary *domain.GlobalSummary
	err     error
}

func (f *fakeStats) UserStats(context.Context, string) (*domain.UserStats, error) {
	return f.stats, f.err
}

func (f *fakeStats) TopDonors(context.Context, int) ([]domain.LeaderboardEntry, error) {
	return f.entries, f.err
}

func (f *fakeStats) TopVolunteers(context.Context, int) ([]domain.LeaderboardEntry, error) {
	return f.entries, f.err
}

func (f *fakeStats) Summary(context.Context) (*domain.GlobalSummary, error) {
	return f.summary, f.err
}

type fakePrices struct {
	quote pricing.Quote
	err   error
}

func (f *fakePrices) Price(context.Context, string) (pricing.Quote, error) {
	return f.quote, f.err
}

type fakePayments struct {
	session *helcim.CheckoutSession
	tx      *helcim.Transaction
	err     error
}

func (f *fakePayments) InitializeCheckout(context.Context, int64, string) (*helcim.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakePayments) VerifyTransaction(context.Context, string) (*helcim.Transaction, error) {
	return f.tx, f.err
}

type fakeDonations struct {
	crypto []domain.Donation
	fiat   []domain.FiatDonation
	err    error
}

func (f *fakeDonations) CreateCrypto(_ context.Context, d *domain.Donation) error {
	if f.err != nil {
		return f.err
	}
	f.crypto = append(f.crypto, *d)
	return nil
}

func (f *fakeDonations) CreateFiat(_ context.Context, d *domain.FiatDonation) error {
	if f.err != nil {
		return f.err
	}
	f.fiat = append(f.fiat, *d)
	return nil
}

func (f *fakeDonations) ListRecent(context.Context, int) ([]domain.Donation, error) {
	return f.crypto, f.err
}

func (f *fakeDonations) ListRecentFiat(context.Context, int) ([]domain.FiatDonation, error) {
	return f.fiat, f.err
}

// testRouter mounts the handlers the way the real route table does, with the
// identity middleware so X-User-ID headers flow into context.
func testRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Identity)
	r.Post("/v1/hours", app.SelfReportCreate)
	r.Get("/v1/hours", app.SelfReportList)
	r.Get("/v1/hours/{id}", app.SelfReportGet)
	r.Put("/v1/hours/{id}", app.SelfReportUpdate)
	r.Delete("/v1/hours/{id}", app.SelfReportDelete)
	r.Post("/v1/hours/{id}/validation-request", app.ValidationRequestCreate)
	r.Get("/v1/validation-requests/queue", app.ValidationQueue)
	r.Post("/v1/validation-requests/{id}/respond", app.ValidationRespond)
	r.Post("/v1/donations/crypto", app.DonationsCreateCrypto)
	r.Post("/v1/donations/fiat", app.DonationsCreateFiat)
	r.Post("/v1/payments/checkout", app.PaymentsCheckout)
	r.Get("/v1/leaderboard", app.Leaderboard)
	r.Get("/v1/users/{id}/stats", app.StatsUser)
	return r
}

func sampleRecord() *domain.SelfReportedHours {
	return &domain.SelfReportedHours{
		ID:           "rec-1",
		VolunteerID:  "vol-1",
		ActivityDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Hours:        3,
		ActivityType: "tutoring",
		Description:  "after-school math tutoring",
		Status:       domain.HoursUnvalidated,
		CreatedAt:    time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
	}
}

func newTestApp(wf *fakeWorkflow) (*App, *fakeDonations) {
	donations := &fakeDonations{}
	return &App{
		Workflow:  wf,
		Stats:     &fakeStats{},
		Prices:    &fakePrices{},
		Donations: donations,
		Log:       zerolog.Nop(),
	}, donations
}
