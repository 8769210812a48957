package usecase

import (
	"context"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	ListUsers(ctx context.Context, actor entity.Actor, req *request.UserListRequest) (*response.PaginatedResponse[response.UserListItem], error)
	GetUser(ctx context.Context, actor entity.Actor, id string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, actor entity.Actor, id string, req *request.AdminUpdateUserRequest) (*response.UserResponse, error)
	SetStatus(ctx context.Context, actor entity.Actor, id string, status string) (*response.UserResponse, error)
	Deactivate(ctx context.Context, actor entity.Actor, id string) error
	Statistics(ctx context.Context, actor entity.Actor) (*response.StatisticsResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAdminService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "admin")),
	}
}

func (as *adminService) ListUsers(ctx context.Context, actor entity.Actor, req *request.UserListRequest) (*response.PaginatedResponse[response.UserListItem], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	filter := repository.UserFilter{
		UserType: entity.UserType(req.UserType),
		Status:   entity.UserStatus(req.Status),
		Search:   req.Search,
	}

	page := req.Window()
	users, err := as.repo.User.FindAll(ctx, filter, page.PerPage, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := as.repo.User.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToListItem(user))
	}

	return response.NewPaginatedResponse(items, page, total), nil
}

func (as *adminService) GetUser(ctx context.Context, actor entity.Actor, id string) (*response.UserResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, as.repo.User, id)
	if err != nil {
		return nil, err
	}

	profile, err := as.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

// UpdateUser applies an admin edit. A status change is checked the same way
// as SetStatus, so an admin cannot suspend or disable their own account here
// either.
func (as *adminService) UpdateUser(ctx context.Context, actor entity.Actor, id string, req *request.AdminUpdateUserRequest) (*response.UserResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	verrs := newValidationError(utils.ValidateStruct(req))
	phone := normalizePhone(req.Phone, as.config.Phone.DefaultRegion, verrs)
	if !verrs.empty() {
		return nil, verrs
	}

	user, err := loadUser(ctx, as.repo.User, id)
	if err != nil {
		return nil, err
	}

	var newStatus entity.UserStatus
	if req.Status != nil {
		status := entity.UserStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		if status != user.Status {
			if err := authorize(actor, user.ID, StatusAction(status)); err != nil {
				return nil, err
			}
			newStatus = status
		}
	}
	if req.UserType != nil {
		user.UserType = entity.UserType(*req.UserType)
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = phone
	}

	if err := as.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if newStatus != "" {
		if err := as.repo.User.UpdateStatus(ctx, user.ID, newStatus); err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		user.Status = newStatus
	}

	profile, err := as.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if req.Profile != nil {
		applyProfile(profile, req.Profile)
		if err := as.repo.Profile.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	as.log.Info("User updated by admin",
		zap.String("admin_id", actor.UserID.String()),
		zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

// SetStatus moves a user to status. Self-activation is allowed so a
// locked-out admin can be restored; self-suspend and self-disable are not.
func (as *adminService) SetStatus(ctx context.Context, actor entity.Actor, id string, status string) (*response.UserResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, as.repo.User, id)
	if err != nil {
		return nil, err
	}

	newStatus := entity.UserStatus(status)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := authorize(actor, user.ID, StatusAction(newStatus)); err != nil {
		as.log.Warn("Status change refused",
			zap.String("admin_id", actor.UserID.String()),
			zap.String("user_id", user.ID.String()),
			zap.String("status", status))
		return nil, err
	}

	if err := as.repo.User.UpdateStatus(ctx, user.ID, newStatus); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	user.Status = newStatus

	as.log.Info("User status changed by admin",
		zap.String("admin_id", actor.UserID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("status", status))

	resp := response.UserToResponse(user, nil)
	return &resp, nil
}

// Deactivate is the admin soft delete. Unlike SetStatus it refuses the
// admin's own account whatever the current status.
func (as *adminService) Deactivate(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := loadUser(ctx, as.repo.User, id)
	if err != nil {
		return err
	}

	if err := authorize(actor, user.ID, ActionAdminDelete); err != nil {
		return err
	}

	if err := as.repo.User.UpdateStatus(ctx, user.ID, entity.StatusInactive); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	as.log.Info("User deactivated by admin",
		zap.String("admin_id", actor.UserID.String()),
		zap.String("user_id", user.ID.String()))
	return nil
}

func (as *adminService) Statistics(ctx context.Context, actor entity.Actor) (*response.StatisticsResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var stats response.StatisticsResponse
	counts := []struct {
		filter repository.UserFilter
		dst    *int64
	}{
		{repository.UserFilter{}, &stats.TotalUsers},
		{repository.UserFilter{Status: entity.StatusActive}, &stats.ByStatus.Active},
		{repository.UserFilter{Status: entity.StatusInactive}, &stats.ByStatus.Inactive},
		{repository.UserFilter{Status: entity.StatusSuspended}, &stats.ByStatus.Suspended},
		{repository.UserFilter{UserType: entity.UserTypeBuyer}, &stats.ByType.Buyers},
		{repository.UserFilter{UserType: entity.UserTypeSeller}, &stats.ByType.Sellers},
		{repository.UserFilter{UserType: entity.UserTypeAdmin}, &stats.ByType.Admins},
	}

	for _, c := range counts {
		n, err := as.repo.User.Count(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("statistics: %w", err)
		}
		*c.dst = n
	}

	return &stats, nil
}

// loadUser resolves a path id to a user. A malformed id is a validation
// failure, an unknown one is ErrUserNotFound.
func loadUser(ctx context.Context, users repository.UserRepository, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, newValidationError(map[string]string{"id": "Invalid user ID"})
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
