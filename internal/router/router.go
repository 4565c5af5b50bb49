package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pet-registry/internal/adapters/storage"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/metrics"

	_ "pet-registry/docs" // registra el doc.json de swagger

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, store en memoria (tests / modo dev).
	Store *storage.Store

	Logger logger.Logger

	// Opcional: si viene, mide requests y expone MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string

	DocsEnabled bool
}

const healthTimeout = 2 * time.Second

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = storage.Memory()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.Recover(log))

	r.Get("/health", healthHandler(store))

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.Metrics.Handler())
	}

	if opts.DocsEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	petsSvc := pets.NewService(store.Pets, log)
	pets.RegisterRoutes(r, petsSvc)

	return r
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

func healthHandler(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Timestamp: time.Now().UTC()}
		status := http.StatusOK
		if err := store.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Error = "storage unreachable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
