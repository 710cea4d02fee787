package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/martinezcrafts/shopdesk-backend/api/controllers"
	"github.com/martinezcrafts/shopdesk-backend/api/middleware"
	"github.com/martinezcrafts/shopdesk-backend/internal/intake"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
	pkgredis "github.com/martinezcrafts/shopdesk-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Idempotency and
// Registry may be nil; the matching surface degrades to a no-op.
type Deps struct {
	Env         string
	Logger      *logger.Logger
	Intake      intake.Service
	Idempotency pkgredis.IdempotencyStore
	Registry    *prometheus.Registry
	ReadyChecks []controllers.ReadyChecker
}

func New(deps Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer(deps.Logger))
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.Logging(deps.Logger))
	router.Use(middleware.CORS())

	router.Get("/health/live", controllers.HealthLive(deps.Env))
	router.Get("/health/ready", controllers.HealthReady(deps.Logger, deps.ReadyChecks))

	if deps.Registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(api chi.Router) {
		api.With(middleware.Idempotency(deps.Idempotency, deps.Logger)).
			Post("/orders", controllers.SubmitOrder(deps.Intake, deps.Logger))
	})

	return router
}
