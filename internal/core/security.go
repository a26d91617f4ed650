// AngelaMos | 2026
// security.go

package core

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/radar/precatorios-api/internal/config"
)

const dummyPassword = "dummy_password_for_timing_attack_prevention"

// PasswordHasher wraps bcrypt with the cost taken from configuration.
// The dummy hash lets callers spend the same effort when there is no
// stored hash to compare against.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

func NewPasswordHasher(cfg config.SecurityConfig) (*PasswordHasher, error) {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf(
			"bcrypt cost %d: %w",
			cfg.BcryptCost,
			ErrInvalidInput,
		)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &PasswordHasher{
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
	}, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf(
			"password longer than %d bytes: %w",
			MaxPasswordBytes,
			ErrInvalidInput,
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports false for passwords Hash would refuse, after spending
// the same bcrypt work as a real comparison.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		//nolint:errcheck // result discarded, only the work matters
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(dummyPassword))
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}

// VerifyTimingSafe compares against the dummy hash when encodedHash is nil
// or empty and always reports false in that case.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, error) {
	if encodedHash == nil || *encodedHash == "" {
		//nolint:errcheck // result discarded, only the work matters
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(dummyPassword))
		return false, nil
	}

	return h.Verify(password, *encodedHash)
}

func (h *PasswordHasher) NeedsRehash(encodedHash string) bool {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true
	}
	return cost != h.cost
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}
