package entity

import "github.com/google/uuid"

type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeAdmin  UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeBuyer, UserTypeSeller, UserTypeAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type User struct {
	Record
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	FullName     *string    `db:"full_name"`
	Phone        *string    `db:"phone"`
	UserType     UserType   `db:"user_type"`
	Status       UserStatus `db:"status"`
}

// IsEnabled is derived from Status; there is no separate column for it.
func (u *User) IsEnabled() bool {
	return u.Status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID   uuid.UUID
	UserType UserType
}

func (a Actor) IsAdmin() bool {
	return a.UserType == UserTypeAdmin
}

func ActorFromUser(u *User) Actor {
	return Actor{UserID: u.ID, UserType: u.UserType}
}
