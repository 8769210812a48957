package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stubUsers only answers FindByID; the other methods are unused by Auth.
type stubUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

type noRevocations struct{}

func (noRevocations) Revoke(context.Context, string, uuid.UUID, time.Time) (bool, error) {
	return true, nil
}

func (noRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func newUser(userType entity.UserType, status entity.UserStatus) *entity.User {
	return &entity.User{
		Record:   entity.Record{ID: uuid.New()},
		Username: string(userType),
		UserType: userType,
		Status:   status,
	}
}

func TestAuth(t *testing.T) {
	issuer := token.NewIssuer(token.Config{Secret: "middleware-secret", Issuer: "test"}, noRevocations{})

	active := newUser(entity.UserTypeSeller, entity.StatusActive)
	suspended := newUser(entity.UserTypeBuyer, entity.StatusSuspended)
	promoted := newUser(entity.UserTypeAdmin, entity.StatusActive)
	users := &stubUsers{users: map[uuid.UUID]*entity.User{
		active.ID:    active,
		suspended.ID: suspended,
		promoted.ID:  promoted,
	}}

	var seen entity.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(issuer, users, zap.NewNop())(next)

	bearer := func(t *testing.T, userID uuid.UUID, userType string) string {
		pair, err := issuer.Issue(userID, userType)
		require.NoError(t, err)
		return "Bearer " + pair.AccessToken
	}

	refreshOnly := func(t *testing.T) string {
		pair, err := issuer.Issue(active.ID, "seller")
		require.NoError(t, err)
		return "Bearer " + pair.RefreshToken
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"refresh token is not an access token", refreshOnly(t), http.StatusUnauthorized},
		{"unknown user", bearer(t, uuid.New(), "buyer"), http.StatusUnauthorized},
		{"suspended user", bearer(t, suspended.ID, "buyer"), http.StatusForbidden},
		{"active user", bearer(t, active.ID, "seller"), http.StatusNoContent},
		{"lowercase scheme", "bearer " + bearer(t, active.ID, "seller")[len("Bearer "):], http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	t.Run("user type comes from storage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", bearer(t, promoted.ID, "buyer"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, promoted.ID, seen.UserID)
		assert.Equal(t, entity.UserTypeAdmin, seen.UserType)
	})
}

func TestAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Admin(zap.NewNop())(next)

	call := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, call(context.Background()))
	assert.Equal(t, http.StatusForbidden, call(utils.SetUserContext(context.Background(), uuid.New(), entity.UserTypeSeller)))
	assert.Equal(t, http.StatusNoContent, call(utils.SetUserContext(context.Background(), uuid.New(), entity.UserTypeAdmin)))
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RateLimit(1, zap.NewNop())(next)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
		req.RemoteAddr = "203.0.113.7:4321"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := CORS([]string{"https://shop.example.com"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/users/login", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "43200", rec.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Get("/api/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	for range 2 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/"+uuid.NewString(), nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/api/admin/users/{id}", "200")))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestLoggerLevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logger(zap.New(core)))
	r.Get("/api/users/me", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Post("/api/users/login", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) })
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/users/me", nil),
		httptest.NewRequest(http.MethodPost, "/api/users/login", nil),
		httptest.NewRequest(http.MethodGet, "/boom", nil),
		httptest.NewRequest(http.MethodGet, "/nowhere", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/users/me", fields["route"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.EqualValues(t, 2, fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, "unmatched", entries[3].ContextMap()["route"])
}
