package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra/geoip"
	"server/internal/middleware"
	"server/internal/payments/helcim"
	"server/internal/pricing"
	"server/internal/validation"
)

// Workflow is the slice of the validation workflow the HTTP layer calls.
type Workflow interface {
	Submit(ctx context.Context, in validation.Input) (*domain.SelfReportedHours, error)
	Get(ctx context.Context, volunteerID, id string) (*domain.SelfReportedHours, error)
	List(ctx context.Context, volunteerID string, limit int) ([]domain.SelfReportedHours, error)
	Update(ctx context.Context, volunteerID, id string, in validation.Input) (*domain.SelfReportedHours, error)
	Delete(ctx context.Context, volunteerID, id string) error
	RequestValidation(ctx context.Context, volunteerID, hoursID, orgID string) (*domain.ValidationRequest, error)
	Queue(ctx context.Context, orgID string, limit int) ([]domain.PendingQueueItem, error)
	Respond(ctx context.Context, orgID, requestID string, approve bool, note, responderID string) (*domain.ValidationRequest, error)
	Resubmit(ctx context.Context, volunteerID, requestID string) (*domain.ValidationRequest, error)
	Cancel(ctx context.Context, volunteerID, requestID string) error
}

// StatsProvider aggregates contributions across the data sources.
type StatsProvider interface {
	UserStats(ctx context.Context, userID string) (*domain.UserStats, error)
	TopDonors(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	TopVolunteers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	Summary(ctx context.Context) (*domain.GlobalSummary, error)
}

// PriceProvider quotes token prices in USD.
type PriceProvider interface {
	Price(ctx context.Context, symbol string) (pricing.Quote, error)
}

// PaymentProcessor handles card checkout sessions and settlement checks.
type PaymentProcessor interface {
	InitializeCheckout(ctx context.Context, amountCents int64, currency string) (*helcim.CheckoutSession, error)
	VerifyTransaction(ctx context.Context, transactionID string) (*helcim.Transaction, error)
}

// App carries the dependencies shared by all HTTP handlers.
type App struct {
	Workflow   Workflow
	Stats      StatsProvider
	Prices     PriceProvider
	Payments   PaymentProcessor
	Donations  domain.DonationRepository
	Volunteers domain.VolunteerRepository
	Orgs       domain.OrganizationRepository
	Geo        geoip.CountryResolver
	Log        zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": slug, "message": message}})
}

// domainError maps the domain sentinels onto HTTP status codes. Anything
// unrecognized is logged and reported as an internal error.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "forbidden", "not allowed for this caller")
	case errors.Is(err, domain.ErrRecordImmutable):
		a.error(w, http.StatusConflict, "immutable", "record can no longer be changed")
	case errors.Is(err, domain.ErrRequestAlreadyOpen):
		a.error(w, http.StatusConflict, "request_open", "a validation request is already open for this record")
	case errors.Is(err, domain.ErrRequestClosed):
		a.error(w, http.StatusConflict, "request_closed", "validation request is no longer pending")
	case errors.Is(err, domain.ErrWindowElapsed):
		a.error(w, http.StatusUnprocessableEntity, "window_elapsed", "validation window has elapsed")
	case errors.Is(err, domain.ErrOrgNotVerified):
		a.error(w, http.StatusUnprocessableEntity, "org_not_verified", "organization is not verified")
	case errors.Is(err, domain.ErrPaymentDeclined):
		a.error(w, http.StatusPaymentRequired, "payment_declined", "payment was not approved")
	default:
		a.Log.Error().Err(err).Msg("http: unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.VolunteerIDFromContext(r.Context())
}

func (a *App) currentOrgID(r *http.Request) string {
	return middleware.OrganizationIDFromContext(r.Context())
}
