package wire

import (
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin requires both a valid access token and the admin user type.
func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.With(
		authenticate,
		middleware.Admin(log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", adminHandler.ListUsers) // ?user_type=&status=&search=&page=&per_page=
		r.Get("/statistics", adminHandler.Statistics)
		r.Get("/{id}", adminHandler.GetUser)
		r.Put("/{id}", adminHandler.UpdateUser)
		r.Delete("/{id}", adminHandler.DeleteUser)
		r.Post("/{id}/status", adminHandler.SetStatus)
	})
}
