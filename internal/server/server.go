package server

import (
	"net/http"
	"time"

	"github.com/alfagnish/itemsd/internal/config"
	"github.com/alfagnish/itemsd/internal/events"
	"github.com/alfagnish/itemsd/internal/handlers"
	"github.com/alfagnish/itemsd/internal/items"
	itemsmw "github.com/alfagnish/itemsd/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps groups the collaborators the router is built from.
type Deps struct {
	Store    *items.Store
	Hub      *events.Hub
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// New creates a fully-configured chi router with all route groups,
// middleware, and handlers wired together.
func New(cfg *config.Config, d Deps) (http.Handler, error) {
	m, err := newMetrics(d.Registry, d.Store)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{itemsmw.HeaderRequestID},
		MaxAge:         300,
	}))
	r.Use(itemsmw.RequestID)
	r.Use(requestLogger(d.Logger))
	r.Use(m.instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// ── Handlers ────────────────────────────────────────────
	systemH := handlers.NewSystemHandler(d.Store)
	itemsH := handlers.NewItemsHandler(d.Store)
	wsH := handlers.NewWSHandler(d.Hub, d.Logger)

	// ── Route groups ────────────────────────────────────────
	r.Group(systemH.Routes)
	r.Route("/items", itemsH.Routes)
	r.Route("/ws", wsH.Routes)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	return r, nil
}

// requestLogger logs each HTTP request with method, path, status code,
// duration and request id.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", itemsmw.GetRequestID(r.Context())),
			)
		})
	}
}
