// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Department   *string
	AvatarURL    *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
	VerifyTimingSafe(password string, encodedHash *string) (bool, error)
	NeedsRehash(encodedHash string) bool
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	hasher       PasswordHasher
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	hasher PasswordHasher,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		hasher:       hasher,
	}
}

// Login returns ErrInvalidCredentials for an unknown email, an inactive
// account and a wrong password alike.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResult, error) {
	ctx, span := core.Tracer().Start(ctx, "auth.Login")
	defer span.End()

	email := normalizeEmail(req.Email)

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			core.AddSpanEvent(ctx, "login.rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := s.hasher.VerifyTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.Active {
		core.AddSpanEvent(ctx, "login.rejected")
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(req.Password); hashErr == nil {
			//nolint:errcheck // best-effort rehash upgrade
			_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
		}
	}

	department := ""
	if user.Department != nil {
		department = *user.Department
	}

	token, expiresAt, err := s.jwt.CreateAccessToken(TokenClaims{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Department: department,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	core.AddSpanEvent(ctx, "login.accepted",
		attribute.String("user.id", user.ID),
		attribute.String("user.role", user.Role),
	)

	return &LoginResult{
		User:      toUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate re-reads the user behind a verified token. A user that was
// removed or deactivated after the token was issued yields an error
// wrapping core.ErrUnauthorized.
func (s *Service) Validate(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("validate: %w", core.ErrUnauthorized)
		}
		return nil, fmt.Errorf("validate: %w", err)
	}

	if !user.Active {
		return nil, fmt.Errorf("validate: inactive user: %w", core.ErrUnauthorized)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) ResolvePrincipal(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) (*middleware.Principal, error) {
	profile, err := s.Validate(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &middleware.Principal{
		ID:         profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
		Role:       profile.Role,
		Department: profile.Department,
	}, nil
}

// ChangePassword always demands the current password, whatever the
// caller's role.
func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *Service) TokenTTL() time.Duration {
	return s.jwt.TokenTTL()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *UserInfo) UserResponse {
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
