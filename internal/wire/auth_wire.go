package wire

import (
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/pkg/middleware"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authenticate func(http.Handler) http.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	limited := r.With(middleware.RateLimit(config.RateLimit.RequestsPerSecond, log))

	// public, rate limited per client IP
	limited.Post("/api/users/register", authHandler.Register)
	limited.Post("/api/users/login", authHandler.Login)
	limited.Post("/api/users/token/refresh", authHandler.Refresh)

	r.With(authenticate).Post("/api/users/logout", authHandler.Logout)
	r.With(authenticate).Post("/api/users/change-password", authHandler.ChangePassword)
}
