package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/ledger-audit/internal/api/middleware"
)

type API struct {
	cfg Config
	log *zap.Logger
	now func() time.Time
}

func NewAPI(cfg Config, log *zap.Logger) *API {
	return &API{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)

	r.NotFound(a.NotFound)
	r.MethodNotAllowed(a.MethodNotAllowed)

	// Probes
	r.Get("/health", a.HealthHandler)
	r.Get("/version", a.VersionHandler)
	r.Get("/ready", a.ReadyHandler)

	// Intake
	r.Post("/audit", a.RecordAudit)

	return r
}
