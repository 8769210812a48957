package usecase

import (
	"errors"
	"fmt"

	"marketplace/internal/data/entity"
	"marketplace/pkg/utils"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountDisabled     = errors.New("account is disabled, please contact support")
	ErrSelfActionForbidden = errors.New("cannot perform this action on your own account")
	ErrInvalidStatus       = errors.New("invalid status, must be one of: active, inactive, suspended")
	ErrInvalidToken        = errors.New("token is invalid or expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrForbidden           = errors.New("admin access required")
	ErrSellerRequired      = errors.New("only sellers or admins can create products")
)

// ValidationError carries one reason per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) *ValidationError {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) add(field, reason string) {
	if prev, ok := e.Fields[field]; ok {
		reason = prev + "; " + reason
	}
	e.Fields[field] = reason
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// ConflictError reports values that are already taken by another user.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	return "already exists: " + utils.FormatValidationErrors(e.Fields)
}

// AccountNotActiveError is returned when a user with a non-active status
// other than inactive tries to authenticate.
type AccountNotActiveError struct {
	Status entity.UserStatus
}

func (e *AccountNotActiveError) Error() string {
	return fmt.Sprintf("account is %s, please contact support", e.Status)
}

// checkActive maps a user's status to the authentication refusal it implies.
func checkActive(user *entity.User) error {
	switch user.Status {
	case entity.StatusActive:
		return nil
	case entity.StatusInactive:
		return ErrAccountDisabled
	default:
		return &AccountNotActiveError{Status: user.Status}
	}
}
