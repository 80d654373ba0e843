package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
	"github.com/MrJamesThe3rd/billbook/internal/http/analytics"
	"github.com/MrJamesThe3rd/billbook/internal/http/customer"
	"github.com/MrJamesThe3rd/billbook/internal/http/document"
	"github.com/MrJamesThe3rd/billbook/internal/http/export"
	"github.com/MrJamesThe3rd/billbook/internal/http/product"
	"github.com/MrJamesThe3rd/billbook/internal/http/profile"
	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

type Options struct {
	Logger         zerolog.Logger
	Verifier       auth.Verifier
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Documents *document.Handler
	Products  *product.Handler
	Customers *customer.Handler
	Profile   *profile.Handler
	Analytics *analytics.Handler
	Export    *export.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(hlog.NewHandler(opts.Logger))
	router.Use(hlog.RequestIDHandler("request_id", "X-Request-Id"))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/shared", h.Documents.SharedRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(opts.Verifier))

			r.Route("/documents", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Documents.Routes(r)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Documents.TemplateRoutes(r)
			})

			r.Route("/products", h.Products.Routes)
			r.Route("/customers", h.Customers.Routes)
			r.Route("/profile", h.Profile.Routes)
			r.Route("/analytics", h.Analytics.Routes)

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Export.Routes(r)
			})
		})
	})

	return router
}
