package usecase

import (
	"context"
	"time"

	"marketplace/internal/data/repository"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer issues and blacklists bearer token pairs.
type TokenIssuer interface {
	Issue(userID uuid.UUID, userType string) (*token.Pair, error)
	IssueAccess(userID uuid.UUID, userType string) (string, time.Time, error)
	ParseRefresh(ctx context.Context, refresh string) (*token.Claims, error)
	Revoke(ctx context.Context, refresh string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type Service struct {
	Auth    AuthService
	User    UserService
	Admin   AdminService
	Catalog CatalogService
}

func NewService(
	repo *repository.Repository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, hasher, config, log),
		User:    NewUserService(repo, config, log),
		Admin:   NewAdminService(repo, config, log),
		Catalog: NewCatalogService(repo, log),
	}
}

// normalizePhone validates an optional phone and rewrites it to E.164.
func normalizePhone(phone *string, region string, verrs *ValidationError) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	normalized, err := utils.NormalizePhone(*phone, region)
	if err != nil {
		verrs.add("phone", "Invalid phone number")
		return nil
	}
	return &normalized
}
