package middleware

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/data/repository"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

// AccessParser validates access tokens.
type AccessParser interface {
	ParseAccess(access string) (*token.Claims, error)
}

// Auth validates the bearer access token and loads the user behind it. The
// user type in context comes from the database, not from the token, so role
// and status changes apply on the next request.
func Auth(parser AccessParser, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseError(w, http.StatusUnauthorized, "Missing authorization token", nil)
				return
			}

			scheme, raw, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				utils.ResponseError(w, http.StatusUnauthorized, "Invalid token format. Use: Bearer <token>", nil)
				return
			}

			claims, err := parser.ParseAccess(strings.TrimSpace(raw))
			if err != nil {
				if !errors.Is(err, token.ErrInvalidToken) {
					logger.Error("Failed to parse access token", zap.Error(err))
				}
				utils.ResponseError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				utils.ResponseError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token owner",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				utils.ResponseError(w, http.StatusInternalServerError, "Internal server error", nil)
				return
			}
			if user == nil {
				logger.Warn("Token for unknown user", zap.String("user_id", userID.String()))
				utils.ResponseError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}
			if !user.IsEnabled() {
				logger.Warn("Token for disabled account",
					zap.String("user_id", userID.String()),
					zap.String("status", string(user.Status)))
				utils.ResponseError(w, http.StatusForbidden, "Account is not active", nil)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.UserType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin must run after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.ActorFromContext(r.Context())
			if !ok {
				utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			if !actor.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", actor.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseError(w, http.StatusForbidden, "Admin access required", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
