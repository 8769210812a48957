package usecase

import (
	"context"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetMe(ctx context.Context, actor entity.Actor) (*response.UserResponse, error)
	UpdateSelf(ctx context.Context, actor entity.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeactivateSelf(ctx context.Context, actor entity.Actor) error
	GetProfile(ctx context.Context, actor entity.Actor) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, req *request.ProfileRequest) (*response.ProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetMe(ctx context.Context, actor entity.Actor) (*response.UserResponse, error) {
	if err := authorize(actor, actor.UserID, ActionView); err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, us.repo.User, actor.UserID.String())
	if err != nil {
		return nil, err
	}

	profile, err := us.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

// UpdateSelf only touches full_name, phone and the profile. Identity and
// authorization fields are not part of the request type.
func (us *userService) UpdateSelf(ctx context.Context, actor entity.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := authorize(actor, actor.UserID, ActionUpdate); err != nil {
		return nil, err
	}

	verrs := newValidationError(utils.ValidateStruct(req))
	phone := normalizePhone(req.Phone, us.config.Phone.DefaultRegion, verrs)
	if !verrs.empty() {
		return nil, verrs
	}

	user, err := loadUser(ctx, us.repo.User, actor.UserID.String())
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = phone
	}

	if err := us.repo.User.UpdateProfileFields(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	profile, err := us.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if req.Profile != nil {
		applyProfile(profile, req.Profile)
		if err := us.repo.Profile.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user, profile)
	return &resp, nil
}

// DeactivateSelf is a soft delete. Only an active account can deactivate
// itself; coming back requires an admin.
func (us *userService) DeactivateSelf(ctx context.Context, actor entity.Actor) error {
	if err := authorize(actor, actor.UserID, ActionSelfDeactivate); err != nil {
		return err
	}

	user, err := loadUser(ctx, us.repo.User, actor.UserID.String())
	if err != nil {
		return err
	}
	if err := checkActive(user); err != nil {
		return err
	}

	if err := us.repo.User.UpdateStatus(ctx, user.ID, entity.StatusInactive); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	us.log.Info("Account deactivated by owner", zap.String("user_id", user.ID.String()))
	return nil
}

func (us *userService) GetProfile(ctx context.Context, actor entity.Actor) (*response.ProfileResponse, error) {
	if err := authorize(actor, actor.UserID, ActionView); err != nil {
		return nil, err
	}

	profile, err := us.repo.Profile.GetOrCreate(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, actor entity.Actor, req *request.ProfileRequest) (*response.ProfileResponse, error) {
	if err := authorize(actor, actor.UserID, ActionUpdate); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	profile, err := us.repo.Profile.GetOrCreate(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	applyProfile(profile, req)
	if err := us.repo.Profile.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}

// applyProfile copies every field present in req; absent fields keep their value.
func applyProfile(p *entity.Profile, req *request.ProfileRequest) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = utils.StringPtr(*src)
		}
	}
	set(&p.Avatar, req.Avatar)
	set(&p.Bio, req.Bio)
	set(&p.Address, req.Address)
	set(&p.City, req.City)
	set(&p.Country, req.Country)
	set(&p.PostalCode, req.PostalCode)
}
