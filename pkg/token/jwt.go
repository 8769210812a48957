package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers malformed, expired, wrongly typed and revoked tokens.
var ErrInvalidToken = errors.New("token is invalid or expired")

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type Claims struct {
	Type     string `json:"token_type"`
	UserType string `json:"user_type,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type Pair struct {
	AccessToken      string    `json:"access"`
	RefreshToken     string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// RevocationStore is the refresh-token blacklist. Revoke must report false
// when jti is already present, atomically with respect to concurrent callers.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Option func(*Issuer)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// Issuer signs HS256 access/refresh pairs and blacklists refresh tokens.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      RevocationStore
	now        func() time.Time
}

func NewIssuer(cfg Config, store RevocationStore, opts ...Option) *Issuer {
	i := &Issuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		store:      store,
		now:        time.Now,
	}
	if i.accessTTL <= 0 {
		i.accessTTL = time.Hour
	}
	if i.refreshTTL <= 0 {
		i.refreshTTL = 7 * 24 * time.Hour
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Issuer) Issue(userID uuid.UUID, userType string) (*Pair, error) {
	access, accessExp, err := i.IssueAccess(userID, userType)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := i.sign(userID, userType, TypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (i *Issuer) IssueAccess(userID uuid.UUID, userType string) (string, time.Time, error) {
	access, exp, err := i.sign(userID, userType, TypeAccess, i.accessTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return access, exp, nil
}

func (i *Issuer) sign(userID uuid.UUID, userType, typ string, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(ttl)
	claims := Claims{
		Type:     typ,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess validates signature, expiry and type of an access token.
// Access tokens are not checked against the blacklist.
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TypeAccess)
}

// ParseRefresh validates a refresh token and rejects blacklisted ones.
func (i *Issuer) ParseRefresh(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := i.parse(tokenStr, TypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := i.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke blacklists a refresh token. Revoking a token twice fails with
// ErrInvalidToken.
func (i *Issuer) Revoke(ctx context.Context, refresh string) error {
	claims, err := i.parse(refresh, TypeRefresh)
	if err != nil {
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		return ErrInvalidToken
	}

	ok, err := i.store.Revoke(ctx, claims.ID, userID, claims.ExpiresAt.Time)
	if err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}

func (i *Issuer) parse(tokenStr, typ string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != typ || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
