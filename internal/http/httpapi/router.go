package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// RouterOptions carries the cross-cutting pieces the router wires in front
// of the handlers.
type RouterOptions struct {
	Logger          zerolog.Logger
	DefaultLocale   string
	CORSOrigins     []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Post("/", app.CampaignsCreate)
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.Post("/{id}/donations", app.DonationsCreate)
		r.Post("/{id}/end", app.CampaignsEnd)
	})

	r.Get("/v1/events", app.EventsList)
	r.Get("/v1/accounts/{id}", app.AccountsGet)

	return r
}
