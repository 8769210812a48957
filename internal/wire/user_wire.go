package wire

import (
	"net/http"

	"marketplace/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, authenticate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/api/users/me", userHandler.GetMe)
		r.Put("/api/users/me", userHandler.UpdateMe)
		r.Delete("/api/users/me", userHandler.DeleteMe) // soft delete
		r.Get("/api/users/profile", userHandler.GetProfile)
		r.Put("/api/users/profile", userHandler.UpdateProfile)
	})
}
