package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/adaptor"
	"marketplace/internal/data/entity"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubCatalog struct{}

func (stubCatalog) CreateProduct(_ context.Context, _ entity.Actor, req *request.ProductRequest) (*response.ProductResponse, error) {
	return &response.ProductResponse{Name: req.Name}, nil
}

func (stubCatalog) ListCategories(context.Context) ([]response.CategoryResponse, error) {
	return []response.CategoryResponse{}, nil
}

func (stubCatalog) CreateCategory(_ context.Context, _ entity.Actor, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	return &response.CategoryResponse{Name: req.Name}, nil
}

// headerAuth trusts the X-User-Type header in place of a bearer token.
func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userType := r.Header.Get("X-User-Type")
		if userType == "" {
			utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		ctx := utils.SetUserContext(r.Context(), uuid.New(), entity.UserType(userType))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestCatalogRoutes(t *testing.T) {
	r := chi.NewRouter()
	wireCatalog(r, adaptor.NewCatalogHandler(stubCatalog{}, zap.NewNop()), headerAuth, zap.NewNop())

	tests := []struct {
		name     string
		method   string
		path     string
		userType string
		code     int
	}{
		{"anyone lists categories", http.MethodGet, "/api/products/categories", "", http.StatusOK},
		{"anonymous product create", http.MethodPost, "/api/products", "", http.StatusUnauthorized},
		{"seller creates product", http.MethodPost, "/api/products", "seller", http.StatusCreated},
		{"seller creates category", http.MethodPost, "/api/products/categories", "seller", http.StatusForbidden},
		{"admin creates category", http.MethodPost, "/api/products/categories", "admin", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"name":"Books","price":1}`))
			if tt.userType != "" {
				req.Header.Set("X-User-Type", tt.userType)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
