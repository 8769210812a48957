package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memUsers enforces username and email uniqueness the way the database
// constraints do.
type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return &repository.DuplicateError{Field: "username"}
		}
		if u.Email == user.Email {
			return &repository.DuplicateError{Field: "email"}
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUsers) find(match func(*entity.User) bool) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			clone := *u
			return &clone
		}
	}
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (m *memUsers) filtered(filter repository.UserFilter) []*entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	search := strings.ToLower(filter.Search)
	for _, u := range m.users {
		if filter.UserType != "" && u.UserType != filter.UserType {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memUsers) FindAll(_ context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	all := m.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *memUsers) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	return int64(len(m.filtered(filter))), nil
}

func (m *memUsers) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok {
		return errors.New("user not found")
	}
	u.FullName = user.FullName
	u.Phone = user.Phone
	u.UserType = user.UserType
	u.UpdatedAt = time.Now()
	user.Status = u.Status
	user.UpdatedAt = u.UpdatedAt
	return nil
}

func (m *memUsers) UpdateProfileFields(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok {
		return errors.New("user not found")
	}
	u.FullName = user.FullName
	u.Phone = user.Phone
	u.UpdatedAt = time.Now()
	user.UserType = u.UserType
	user.Status = u.Status
	user.UpdatedAt = u.UpdatedAt
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) UpdateStatus(_ context.Context, id uuid.UUID, status entity.UserStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Status = status
	return nil
}

func (m *memUsers) get(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()
	u, _ := m.FindByID(context.Background(), id)
	require.NotNil(t, u)
	return u
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.Profile
	failures int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (m *memProfiles) Create(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("profile store unavailable")
	}
	if _, ok := m.profiles[userID]; !ok {
		now := time.Now()
		m.profiles[userID] = &entity.Profile{UserID: userID, CreatedAt: now, UpdatedAt: now}
	}
	return nil
}

func (m *memProfiles) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if err := m.Create(ctx, userID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *m.profiles[userID]
	return &clone, nil
}

func (m *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.UserID]; !ok {
		return errors.New("profile not found")
	}
	clone := *p
	m.profiles[p.UserID] = &clone
	return nil
}

func (m *memProfiles) has(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.profiles[userID]
	return ok
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func (m *memRevocations) Revoke(_ context.Context, jti string, _ uuid.UUID, _ time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revoked[jti]; ok {
		return false, nil
	}
	m.revoked[jti] = struct{}{}
	return true, nil
}

func (m *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

// memCatalog backs both the category and product stores so listings can
// count products per category.
type memCatalog struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
	products   []*entity.Product
}

func newMemCatalog() *memCatalog {
	return &memCatalog{categories: make(map[uuid.UUID]*entity.Category)}
}

func (m *memCatalog) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return &repository.DuplicateError{Field: "name"}
		}
		if existing.Slug == c.Slug {
			return &repository.DuplicateError{Field: "slug"}
		}
	}
	clone := *c
	m.categories[c.ID] = &clone
	return nil
}

func (m *memCatalog) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *memCatalog) ListActive(_ context.Context) ([]repository.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.CategoryCount
	for _, c := range m.categories {
		if !c.IsActive {
			continue
		}
		entry := repository.CategoryCount{Category: *c}
		for _, p := range m.products {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				entry.ProductCount++
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// memProducts shares memCatalog's state under the product store interface.
type memProducts struct{ *memCatalog }

func (m memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.products = append(m.products, &clone)
	return nil
}

func (m *memCatalog) productCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

type fixture struct {
	users    *memUsers
	profiles *memProfiles
	catalog  *memCatalog
	tokens   *token.Issuer
	hasher   *utils.BcryptHasher
	config   *utils.Config
	svc      *usecase.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:    newMemUsers(),
		profiles: newMemProfiles(),
		catalog:  newMemCatalog(),
		hasher:   utils.NewBcryptHasher(bcrypt.MinCost),
		config: &utils.Config{
			Password: utils.DefaultPasswordPolicy(),
			Phone:    utils.PhoneConfig{DefaultRegion: "US"},
		},
	}
	f.tokens = token.NewIssuer(token.Config{
		Secret: "usecase-test-secret",
		Issuer: "marketplace-test",
	}, &memRevocations{revoked: make(map[string]struct{})})

	f.svc = f.serviceWith(f.users)
	return f
}

// seed stores a user directly, bypassing registration rules.
func (f *fixture) seed(t *testing.T, username string, userType entity.UserType, status entity.UserStatus, password string) *entity.User {
	t.Helper()

	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	user := &entity.User{
		Record:       entity.NewRecord(time.Now()),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		UserType:     userType,
		Status:       status,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

var repositoryAll = repository.UserFilter{}

// interleavedUsers runs between after the first FindByID of target, the way a
// concurrent request would land between a service's read and its write.
type interleavedUsers struct {
	*memUsers
	target  uuid.UUID
	between func()
	once    sync.Once
}

func (r *interleavedUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := r.memUsers.FindByID(ctx, id)
	if id == r.target {
		r.once.Do(r.between)
	}
	return user, err
}

// serviceWith builds a service over users and the fixture's other stores.
func (f *fixture) serviceWith(users repository.UserRepository) *usecase.Service {
	repo := &repository.Repository{
		User:     users,
		Profile:  f.profiles,
		Category: f.catalog,
		Product:  memProducts{f.catalog},
	}
	return usecase.NewService(repo, f.tokens, f.hasher, f.config, zap.NewNop())
}

// category stores a category directly, bypassing the admin check.
func (f *fixture) category(t *testing.T, name string, active bool) *entity.Category {
	t.Helper()

	c := &entity.Category{
		Record:   entity.NewRecord(time.Now()),
		Name:     name,
		Slug:     utils.Slugify(name),
		IsActive: active,
	}
	require.NoError(t, f.catalog.Create(context.Background(), c))
	return c
}
