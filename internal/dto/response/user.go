package response

import (
	"time"

	"marketplace/internal/data/entity"
)

type UserResponse struct {
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	FullName  *string           `json:"full_name"`
	Phone     *string           `json:"phone"`
	UserType  entity.UserType   `json:"user_type"`
	Status    entity.UserStatus `json:"status"`
	IsEnabled bool              `json:"is_enabled"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Profile   *ProfileResponse  `json:"profile,omitempty"`
}

type ProfileResponse struct {
	Avatar     *string `json:"avatar"`
	Bio        *string `json:"bio"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
}

// UserListItem is the trimmed row used by the admin listing.
type UserListItem struct {
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	FullName  *string           `json:"full_name"`
	UserType  entity.UserType   `json:"user_type"`
	Status    entity.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type StatisticsResponse struct {
	TotalUsers int64           `json:"total_users"`
	ByStatus   StatusBreakdown `json:"by_status"`
	ByType     TypeBreakdown   `json:"by_type"`
}

type StatusBreakdown struct {
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Suspended int64 `json:"suspended"`
}

type TypeBreakdown struct {
	Buyers  int64 `json:"buyers"`
	Sellers int64 `json:"sellers"`
	Admins  int64 `json:"admins"`
}

// UserToResponse never exposes the password hash. profile may be nil.
func UserToResponse(user *entity.User, profile *entity.Profile) UserResponse {
	resp := UserResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		UserType:  user.UserType,
		Status:    user.Status,
		IsEnabled: user.IsEnabled(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if profile != nil {
		p := ProfileToResponse(profile)
		resp.Profile = &p
	}
	return resp
}

func ProfileToResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		Avatar:     p.Avatar,
		Bio:        p.Bio,
		Address:    p.Address,
		City:       p.City,
		Country:    p.Country,
		PostalCode: p.PostalCode,
	}
}

func UserToListItem(user *entity.User) UserListItem {
	return UserListItem{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		UserType:  user.UserType,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
