// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/radar/precatorios-api/internal/core"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Department   *string   `db:"department"`
	AvatarURL    *string   `db:"avatar_url"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

type Stats struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByRole map[string]int `json:"by_role"`
}

// Changes is the set of columns an update touches. Only entries with Set
// are written; Null clears a nullable column.
type Changes struct {
	Email        core.Optional[string]
	PasswordHash core.Optional[string]
	Name         core.Optional[string]
	Role         core.Optional[string]
	Department   core.Optional[string]
	AvatarURL    core.Optional[string]
	Active       core.Optional[bool]
}

func (c Changes) IsEmpty() bool {
	return !c.Email.Set &&
		!c.PasswordHash.Set &&
		!c.Name.Set &&
		!c.Role.Set &&
		!c.Department.Set &&
		!c.AvatarURL.Set &&
		!c.Active.Set
}
