package request

type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=150,nospace"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Password        string  `json:"password" validate:"required"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	UserType        string  `json:"user_type,omitempty" validate:"omitempty,oneof=buyer seller admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is used by both logout and token refresh.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}
