// Package httpapi wires the HTTP routes onto the handler set.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Options configures router construction.
type Options struct {
	CORSAllowedOrigins []string
	RateLimitPerMin    int
	Logger             zerolog.Logger
}

// NewRouter builds the full route table.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSAllowedOrigins),
		middleware.Identity,
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/me", func(r chi.Router) {
		r.Get("/", app.Me)
		r.Put("/", app.MeUpsert)
	})

	r.Route("/v1/hours", func(r chi.Router) {
		r.Post("/", app.SelfReportCreate)
		r.Get("/", app.SelfReportList)
		r.Get("/{id}", app.SelfReportGet)
		r.Put("/{id}", app.SelfReportUpdate)
		r.Delete("/{id}", app.SelfReportDelete)
		r.Post("/{id}/validation-request", app.ValidationRequestCreate)
	})

	r.Route("/v1/validation-requests", func(r chi.Router) {
		r.Get("/queue", app.ValidationQueue)
		r.Post("/{id}/respond", app.ValidationRespond)
		r.Post("/{id}/resubmit", app.ValidationResubmit)
		r.Post("/{id}/cancel", app.ValidationCancel)
	})

	r.Route("/v1/donations", func(r chi.Router) {
		r.Get("/", app.DonationsRecent)
		r.Post("/crypto", app.DonationsCreateCrypto)
		r.Post("/fiat", app.DonationsCreateFiat)
	})
	r.Post("/v1/payments/checkout", app.PaymentsCheckout)

	r.Route("/v1/organizations", func(r chi.Router) {
		r.Get("/", app.OrganizationsList)
		r.Get("/{id}", app.OrganizationGet)
	})

	r.Get("/v1/users/{id}/stats", app.StatsUser)
	r.Get("/v1/leaderboard", app.Leaderboard)
	r.Get("/v1/stats/summary", app.StatsSummary)
	r.Get("/v1/prices/{symbol}", app.PriceGet)

	return r
}
