package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/data/entity"
	"marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserFilter narrows list and count queries. Zero values are ignored.
type UserFilter struct {
	UserType entity.UserType
	Status   entity.UserStatus
	Search   string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateProfileFields(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error
}

var userConstraints = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

const userColumns = `id, username, email, password, full_name, phone,
		       user_type, status, created_at, updated_at`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user. A unique violation on username or email is
// returned as *DuplicateError.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, full_name, phone,
		                   user_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.UserType,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if dup, ok := asDuplicate(err, userConstraints); ok {
		ur.log.Warn("Duplicate user on insert",
			zap.String("field", dup.Field),
			zap.String("username", user.Username),
		)
		return dup
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := ur.findOne(ctx, "id = $1", id)
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}
	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := ur.findOne(ctx, "email = $1", email)
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := ur.findOne(ctx, "username = $1", username)
	if err != nil {
		ur.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}
	return user, nil
}

// findOne returns nil, nil when no row matches.
func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(ur.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindAll retrieves a filtered, paginated list of users, newest first.
func (ur *userRepository) FindAll(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error) {
	where, args := buildUserWhere(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, len(args)-1, len(args))

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	where, args := buildUserWhere(filter)
	query := `SELECT COUNT(*) FROM users ` + where

	var count int64
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		ur.log.Error("Database error counting users",
			zap.Error(err),
			zap.String("user_type", string(filter.UserType)),
			zap.String("status", string(filter.Status)),
		)
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

// Update writes the fields an admin may edit: full_name, phone and
// user_type. Status only changes through UpdateStatus; the stored status is
// read back into user so a concurrent status change is never overwritten.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, phone = $3, user_type = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING status, updated_at
	`

	err := ur.db.QueryRow(ctx, query,
		user.ID,
		user.FullName,
		user.Phone,
		user.UserType,
	).Scan(&user.Status, &user.UpdatedAt)

	return ur.updateResult(err, "update user", user.ID)
}

// UpdateProfileFields writes only full_name and phone, the fields a user may
// change on their own account.
func (ur *userRepository) UpdateProfileFields(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING user_type, status, updated_at
	`

	err := ur.db.QueryRow(ctx, query,
		user.ID,
		user.FullName,
		user.Phone,
	).Scan(&user.UserType, &user.Status, &user.UpdatedAt)

	return ur.updateResult(err, "update profile fields", user.ID)
}

func (ur *userRepository) updateResult(err error, op string, id uuid.UUID) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %s not found", id.String())
	}
	if err != nil {
		ur.log.Error("Failed to "+op,
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("%s for user %s: %w", op, id.String(), err)
	}
	return nil
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`
	return ur.exec(ctx, "update password", id, query, id, passwordHash)
}

func (ur *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	query := `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := ur.exec(ctx, "update status", id, query, id, status); err != nil {
		return err
	}

	ur.log.Info("User status updated",
		zap.String("user_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (ur *userRepository) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...any) error {
	result, err := ur.db.Exec(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to "+op,
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("%s for user %s: %w", op, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.UserType,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func buildUserWhere(filter UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.UserType != "" {
		args = append(args, filter.UserType)
		conds = append(conds, fmt.Sprintf("user_type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
