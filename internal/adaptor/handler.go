package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Admin   *AdminHandler
	Catalog *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Admin:   NewAdminHandler(service.Admin, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseError(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps usecase errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *usecase.ValidationError
		conflictErr   *usecase.ConflictError
		notActiveErr  *usecase.AccountNotActiveError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseError(w, http.StatusBadRequest, "Validation failed", validationErr.Fields)

	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - already exists", zap.Any("errors", conflictErr.Fields))
		utils.ResponseError(w, http.StatusConflict, "Already exists", conflictErr.Fields)

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseError(w, http.StatusUnauthorized, err.Error(), nil)

	case errors.Is(err, usecase.ErrAccountDisabled),
		errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrSellerRequired),
		errors.As(err, &notActiveErr):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseError(w, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, usecase.ErrSelfActionForbidden),
		errors.Is(err, usecase.ErrInvalidStatus):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseError(w, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseError(w, http.StatusNotFound, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
