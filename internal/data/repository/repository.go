package repository

import (
	"errors"
	"fmt"

	"marketplace/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Profile  ProfileRepository
	Token    TokenRepository
	Category CategoryRepository
	Product  ProductRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Profile:  NewProfileRepository(db, log),
		Token:    NewTokenRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Product:  NewProductRepository(db, log),
	}
}

const uniqueViolation = "23505"

// DuplicateError reports a unique constraint violation on a single column.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// asDuplicate converts a postgres unique violation into a DuplicateError.
// The field is resolved from the constraint name via columns.
func asDuplicate(err error, columns map[string]string) (*DuplicateError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil, false
	}

	field, ok := columns[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ConstraintName
	}
	return &DuplicateError{Field: field}, true
}

type rowScanner interface {
	Scan(dest ...any) error
}
