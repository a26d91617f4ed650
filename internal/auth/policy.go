// AngelaMos | 2026
// policy.go

package auth

import (
	"fmt"

	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/middleware"
)

// CanUpdate allows administrators to write any user record and everyone
// else to write only their own.
func CanUpdate(actor *middleware.Principal, targetID string) error {
	if actor == nil {
		return fmt.Errorf("can update: %w", core.ErrUnauthorized)
	}

	if actor.IsAdmin() || actor.ID == targetID {
		return nil
	}

	return fmt.Errorf("can update: %w", core.ErrForbidden)
}

func CanView(actor *middleware.Principal, targetID string) error {
	if actor == nil {
		return fmt.Errorf("can view: %w", core.ErrUnauthorized)
	}

	if actor.IsAdmin() || actor.ID == targetID {
		return nil
	}

	return fmt.Errorf("can view: %w", core.ErrForbidden)
}
