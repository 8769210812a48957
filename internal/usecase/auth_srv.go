package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, refresh string) error
	Refresh(ctx context.Context, refresh string) (*response.RefreshResponse, error)
	ChangePassword(ctx context.Context, actor entity.Actor, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	tokens TokenIssuer
	hasher PasswordHasher
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	verrs := newValidationError(utils.ValidateStruct(req))

	if req.Password != "" {
		if req.Password != req.PasswordConfirm {
			verrs.add("password", "Passwords do not match")
		}
		for _, problem := range s.config.Password.Check(req.Password, req.Username, req.Email) {
			verrs.add("password", problem)
		}
	}

	userType := entity.UserTypeBuyer
	if req.UserType != "" {
		userType = entity.UserType(req.UserType)
	}
	if userType == entity.UserTypeAdmin && s.config.App.BlockAdminSignup {
		verrs.add("user_type", "Admin accounts cannot be self-registered")
	}

	phone := normalizePhone(req.Phone, s.config.Phone.DefaultRegion, verrs)

	if !verrs.empty() {
		s.log.Warn("Register validation failed", zap.Any("errors", verrs.Fields))
		return nil, verrs
	}

	if err := s.checkAvailable(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Record:       entity.NewRecord(time.Now()),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Phone:        phone,
		UserType:     userType,
		Status:       entity.StatusActive,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Fields: map[string]string{dup.Field: conflictReason(dup.Field)}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// A failed profile insert leaves the user in place; the profile is
	// created on first access instead.
	var profile *entity.Profile
	if p, err := s.repo.Profile.GetOrCreate(ctx, user.ID); err != nil {
		s.log.Warn("Profile creation deferred",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		profile = p
	}

	resp := &response.AuthResponse{User: response.UserToResponse(user, profile)}

	pair, err := s.tokens.Issue(user.ID, string(user.UserType))
	if err != nil {
		s.log.Warn("Failed to issue tokens after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		resp.Tokens = pair
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("user_type", string(user.UserType)))

	return resp, nil
}

// checkAvailable reports every taken value at once. It is only a pre-check;
// the unique constraints are authoritative.
func (s *authService) checkAvailable(ctx context.Context, username, email string) error {
	conflicts := make(map[string]string)

	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		conflicts["username"] = conflictReason("username")
	}

	existing, err = s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		conflicts["email"] = conflictReason("email")
	}

	if len(conflicts) > 0 {
		s.log.Warn("Register conflict", zap.Any("fields", conflicts))
		return &ConflictError{Fields: conflicts}
	}
	return nil
}

func conflictReason(field string) string {
	switch field {
	case "username":
		return "Username already exists"
	case "email":
		return "Email already registered"
	default:
		return "Already exists"
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown user and wrong password are indistinguishable to the caller
	if user == nil {
		s.log.Warn("Login for unknown username", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if err := checkActive(user); err != nil {
		s.log.Warn("Login refused",
			zap.String("user_id", user.ID.String()),
			zap.String("status", string(user.Status)))
		return nil, err
	}

	pair, err := s.tokens.Issue(user.ID, string(user.UserType))
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	profile, err := s.repo.Profile.GetOrCreate(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to load profile on login", zap.Error(err), zap.String("user_id", user.ID.String()))
		profile = nil
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{
		User:   response.UserToResponse(user, profile),
		Tokens: pair,
	}, nil
}

func (s *authService) Logout(ctx context.Context, refresh string) error {
	if strings.TrimSpace(refresh) == "" {
		return newValidationError(map[string]string{"refresh": "Refresh token is required"})
	}

	if err := s.tokens.Revoke(ctx, refresh); err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			s.log.Warn("Logout with invalid token")
			return ErrInvalidToken
		}
		s.log.Error("Failed to revoke token", zap.Error(err))
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Refresh(ctx context.Context, refresh string) (*response.RefreshResponse, error) {
	if strings.TrimSpace(refresh) == "" {
		return nil, newValidationError(map[string]string{"refresh": "Refresh token is required"})
	}

	claims, err := s.tokens.ParseRefresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("parse refresh token: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if err := checkActive(user); err != nil {
		return nil, err
	}

	access, exp, err := s.tokens.IssueAccess(user.ID, string(user.UserType))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &response.RefreshResponse{Access: access, ExpiresAt: exp}, nil
}

// ChangePassword leaves outstanding tokens valid until they expire.
func (s *authService) ChangePassword(ctx context.Context, actor entity.Actor, req *request.ChangePasswordRequest) error {
	if err := authorize(actor, actor.UserID, ActionUpdate); err != nil {
		return err
	}

	verrs := newValidationError(utils.ValidateStruct(req))
	if !verrs.empty() {
		return verrs
	}

	user, err := s.repo.User.FindByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(req.OldPassword, user.PasswordHash) {
		verrs.add("old_password", "Old password is incorrect")
	}
	if req.NewPassword != req.NewPasswordConfirm {
		verrs.add("new_password", "New passwords do not match")
	}
	for _, problem := range s.config.Password.Check(req.NewPassword, user.Username, user.Email) {
		verrs.add("new_password", problem)
	}
	if !verrs.empty() {
		s.log.Warn("Change password rejected",
			zap.String("user_id", user.ID.String()), zap.Any("errors", verrs.Fields))
		return verrs
	}

	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}
