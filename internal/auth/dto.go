// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"senha" validate:"required,max=72"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"nome"`
	Role       string    `json:"role"`
	Department *string   `json:"departamento"`
	AvatarURL  *string   `json:"fotoUrl"`
	Active     bool      `json:"ativo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResult carries the token to the handler. Only User is ever written
// to the response body; the token travels in the session cookie.
type LoginResult struct {
	User      UserResponse
	Token     string
	ExpiresAt time.Time
}
