package wire

import (
	"context"
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/internal/data/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/middleware"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds the services, handlers and router.
func Wiring(
	repo *repository.Repository,
	tokens *token.Issuer,
	config *utils.Config,
	registry *prometheus.Registry,
	health HealthCheck,
	logger *zap.Logger,
) *App {
	hasher := utils.NewBcryptHasher(config.App.BcryptCost)
	service := usecase.NewService(repo, tokens, hasher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, config, registry, health, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Issuer,
	config *utils.Config,
	registry *prometheus.Registry,
	health HealthCheck,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(registry)

	r.Use(chimw.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Handler)
	r.Use(middleware.CORS(config.App.CORSOrigins))

	authenticate := middleware.Auth(tokens, repo.User, logger)

	wireAuth(r, handler.Auth, authenticate, config, logger)
	wireUser(r, handler.User, authenticate)
	wireAdmin(r, handler.Admin, authenticate, logger)
	wireCatalog(r, handler.Catalog, authenticate, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := health(r.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseError(w, http.StatusServiceUnavailable, "Database unavailable", nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return r
}
