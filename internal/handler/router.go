package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/joe-bookmarks/docs/swagger"
	"github.com/joestump/joe-bookmarks/internal/api"
	"github.com/joestump/joe-bookmarks/internal/logger"
)

// Probe is the subset of the bookmark store the operational routes need.
type Probe interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	API    api.Deps
	Probe  Probe
	Logger logger.Logger

	// AccessLog writes one line per request. Off in the test environment.
	AccessLog         bool
	RequestTimeout    time.Duration
	RateLimit         RateLimitConfig
	// CORSAllowedOrigin is echoed in Access-Control-Allow-Origin. Empty disables CORS.
	CORSAllowedOrigin string
	// TrustProxy lets X-Forwarded-For, X-Real-IP and True-Client-IP replace
	// RemoteAddr. Off, the rate limiter keys on the TCP peer.
	TrustProxy        bool
	StartTime         time.Time
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if deps.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(observe(deps.Logger, deps.AccessLog))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	if deps.CORSAllowedOrigin != "" {
		r.Use(cors(deps.CORSAllowedOrigin))
	}
	if deps.RateLimit.RPS > 0 {
		r.Use(RateLimit(deps.RateLimit))
	}
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.Get("/", hello)
	r.Get("/healthz", healthz(deps.StartTime))
	r.Get("/readyz", readyz(deps.Probe, deps.Logger))
	r.Handle("/metrics", metricsHandler(deps.Probe, deps.Logger, promhttp.Handler()))

	// Swagger UI. Kept outside /api so the docs load without a token.
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Mount("/api", api.NewAPIRouter(deps.API))

	return r
}
