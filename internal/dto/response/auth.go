package response

import (
	"time"

	"marketplace/pkg/token"
)

type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens *token.Pair  `json:"tokens,omitempty"`
}

type RefreshResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expires_at"`
}
