package request

// UpdateUserRequest is the self-service update payload. Any other field the
// client sends (username, email, user_type, status) is dropped on decode.
type UpdateUserRequest struct {
	FullName *string         `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string         `json:"phone" validate:"omitempty,max=20"`
	Profile  *ProfileRequest `json:"profile" validate:"omitempty"`
}

type ProfileRequest struct {
	Avatar     *string `json:"avatar" validate:"omitempty,max=500"`
	Bio        *string `json:"bio" validate:"omitempty,max=2000"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Country    *string `json:"country" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=20"`
}

type AdminUpdateUserRequest struct {
	FullName *string         `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string         `json:"phone" validate:"omitempty,max=20"`
	UserType *string         `json:"user_type" validate:"omitempty,oneof=buyer seller admin"`
	Status   *string         `json:"status"`
	Profile  *ProfileRequest `json:"profile" validate:"omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UserListRequest struct {
	PaginatedRequest
	UserType string `json:"user_type" validate:"omitempty,oneof=buyer seller admin"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Search   string `json:"search" validate:"omitempty,max=150"`
}
