// AngelaMos | 2026
// dto.go

package user

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/radar/precatorios-api/internal/core"
)

const (
	passwordRules   = "min=6,max=72,maxbytes=72"
	nameRules       = "min=1,max=100"
	emailRules      = "email,max=255"
	departmentRules = "max=100"
	avatarRules     = "url,max=2048"
	roleRules       = "oneof=ADMIN OPERATOR VIEWER"
)

type CreateUserRequest struct {
	Name       string  `json:"nome"         validate:"required,min=1,max=100"`
	Email      string  `json:"email"        validate:"required,email,max=255"`
	Password   string  `json:"senha"        validate:"required,min=6,max=72,maxbytes=72"`
	Role       string  `json:"role"         validate:"required,oneof=ADMIN OPERATOR VIEWER"`
	Department *string `json:"departamento" validate:"omitempty,max=100"`
	AvatarURL  *string `json:"fotoUrl"      validate:"omitempty,url,max=2048"`
	Active     *bool   `json:"ativo"`
}

// UpdateUserRequest is a partial update. Each entry distinguishes a key
// that was omitted from one sent as null.
type UpdateUserRequest struct {
	Name       core.Optional[string] `json:"nome"`
	Email      core.Optional[string] `json:"email"`
	Password   core.Optional[string] `json:"senha"`
	Role       core.Optional[string] `json:"role"`
	Department core.Optional[string] `json:"departamento"`
	AvatarURL  core.Optional[string] `json:"fotoUrl"`
	Active     core.Optional[bool]   `json:"ativo"`
}

func (r *UpdateUserRequest) Validate(v *validator.Validate) error {
	required := []struct {
		field string
		null  bool
	}{
		{"nome", r.Name.Null},
		{"email", r.Email.Null},
		{"senha", r.Password.Null},
		{"role", r.Role.Null},
		{"ativo", r.Active.Null},
	}
	for _, f := range required {
		if f.null {
			return fmt.Errorf("%s cannot be null: %w", f.field, core.ErrInvalidInput)
		}
	}

	checks := []struct {
		field string
		value core.Optional[string]
		rules string
	}{
		{"nome", r.Name, nameRules},
		{"email", r.Email, emailRules},
		{"senha", r.Password, passwordRules},
		{"role", r.Role, roleRules},
		{"departamento", r.Department, departmentRules},
		{"fotoUrl", r.AvatarURL, avatarRules},
	}
	for _, c := range checks {
		if !c.value.HasValue() {
			continue
		}
		if err := v.Var(c.value.Value, c.rules); err != nil {
			return fmt.Errorf(
				"%s must satisfy %s: %w",
				c.field,
				c.rules,
				core.ErrInvalidInput,
			)
		}
	}

	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"senhaAtual" validate:"required,max=72"`
	NewPassword     string `json:"novaSenha"  validate:"required,min=6,max=72,maxbytes=72"`
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

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Active   *bool
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		AvatarURL:  u.AvatarURL,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
