package wire

import (
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog keeps category reads public; writes need a token, and
// category writes also need the admin user type.
func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/api/products", func(r chi.Router) {
		r.With(authenticate).Post("/", catalogHandler.CreateProduct) // sellers and admins
		r.Get("/categories", catalogHandler.ListCategories)
		r.With(authenticate, middleware.Admin(log)).Post("/categories", catalogHandler.CreateCategory)
	})
}
