// Package httptransport is the thin HTTP layer. Handlers decode, validate,
// and delegate to domain services; no business rules live here.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderlist/internal/platform/metrics"
	"wanderlist/internal/platform/middleware"
)

// RouterConfig carries everything the router needs wired.
type RouterConfig struct {
	Catalog        CatalogService
	Membership     MembershipService
	Progress       ProgressService
	Feed           FeedService
	Social         SocialService
	Profiles       ProfileService
	TokenValidator middleware.TokenValidator
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewRouter wires the middleware chain and all endpoints. Catalog reads are
// public; everything else requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(cfg.Catalog)
	membershipHandler := NewMembershipHandler(cfg.Membership)
	progressHandler := NewProgressHandler(cfg.Progress)
	feedHandler := NewFeedHandler(cfg.Feed)
	socialHandler := NewSocialHandler(cfg.Social)
	profileHandler := NewProfileHandler(cfg.Profiles)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		catalogHandler.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.TokenValidator, cfg.Logger))
			membershipHandler.Register(r)
			progressHandler.Register(r)
			feedHandler.Register(r)
			socialHandler.Register(r)
			profileHandler.Register(r)
		})
	})

	// Avatar uploads carry image bodies, so they sit outside the JSON
	// content-type guard.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.TokenValidator, cfg.Logger))
		profileHandler.RegisterAvatar(r)
	})

	return r
}
