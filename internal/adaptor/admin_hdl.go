package adaptor

import (
	"net/http"

	"marketplace/internal/dto/request"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	query := r.URL.Query()
	page := utils.PageFromQuery(query)
	req := &request.UserListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    page.Number,
			PerPage: page.PerPage,
		},
		UserType: query.Get("user_type"),
		Status:   query.Get("status"),
		Search:   query.Get("search"),
	}

	users, err := h.service.ListUsers(r.Context(), actor, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUser handles GET /api/admin/users/{id}
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.service.GetUser(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// UpdateUser handles PUT /api/admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req request.AdminUpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deactivated successfully", nil)
}

// SetStatus handles POST /api/admin/users/{id}/status
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req request.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(w, h.log, err, "update status")
		return
	}

	utils.ResponseSuccess(w, "User status updated", user)
}

// Statistics handles GET /api/admin/users/statistics
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	stats, err := h.service.Statistics(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "statistics")
		return
	}

	utils.ResponseSuccess(w, "Statistics retrieved successfully", stats)
}
