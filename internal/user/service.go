// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/radar/precatorios-api/internal/auth"
	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/middleware"
)

var (
	ErrEmailExists = errors.New("email already exists")

	ErrOwnRoleChange = fmt.Errorf(
		"users cannot change their own role: %w",
		core.ErrForbidden,
	)
	ErrOwnStatusChange = fmt.Errorf(
		"users cannot change their own active status: %w",
		core.ErrForbidden,
	)
	ErrOwnPasswordUpdate = fmt.Errorf(
		"own password must be changed through change-password: %w",
		core.ErrForbidden,
	)
	ErrSelfDelete = fmt.Errorf(
		"users cannot delete themselves: %w",
		core.ErrForbidden,
	)
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Department:   req.Department,
		AvatarURL:    req.AvatarURL,
		Active:       active,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(
	ctx context.Context,
	actor *middleware.Principal,
	id string,
) (*User, error) {
	if err := auth.CanView(actor, id); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// UpdateUser applies a partial update after the admin-or-self check. On top
// of that nobody may change their own role or active flag, and a user's own
// password only changes through ChangePassword.
func (s *Service) UpdateUser(
	ctx context.Context,
	actor *middleware.Principal,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	if err := auth.CanUpdate(actor, id); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.ID == id {
		if req.Role.HasValue() && req.Role.Value != current.Role {
			return nil, ErrOwnRoleChange
		}
		if req.Active.HasValue() && req.Active.Value != current.Active {
			return nil, ErrOwnStatusChange
		}
		if req.Password.Set {
			return nil, ErrOwnPasswordUpdate
		}
	}

	changes, err := s.buildChanges(req)
	if err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) buildChanges(req UpdateUserRequest) (Changes, error) {
	var changes Changes

	if req.Name.HasValue() {
		changes.Name = core.Some(strings.TrimSpace(req.Name.Value))
	}
	if req.Email.HasValue() {
		changes.Email = core.Some(normalizeEmail(req.Email.Value))
	}
	if req.Role.HasValue() {
		if !IsValidRole(req.Role.Value) {
			return Changes{}, fmt.Errorf(
				"update user: invalid role %q: %w",
				req.Role.Value,
				core.ErrInvalidInput,
			)
		}
		changes.Role = req.Role
	}
	if req.Active.HasValue() {
		changes.Active = req.Active
	}
	if req.Department.Set {
		changes.Department = req.Department
	}
	if req.AvatarURL.Set {
		changes.AvatarURL = req.AvatarURL
	}
	if req.Password.HasValue() {
		hash, err := s.hasher.Hash(req.Password.Value)
		if err != nil {
			return Changes{}, fmt.Errorf("hash password: %w", err)
		}
		changes.PasswordHash = core.Some(hash)
	}

	return changes, nil
}

func (s *Service) DeleteUser(
	ctx context.Context,
	actor *middleware.Principal,
	id string,
) error {
	if actor != nil && actor.ID == id {
		return ErrSelfDelete
	}

	return s.repo.Delete(ctx, id)
}

// EnsureAdmin creates the seed administrator when no user holds the email
// yet. It reports whether a row was inserted.
func (s *Service) EnsureAdmin(
	ctx context.Context,
	email, password, name string,
) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return false, err
	}

	_, err = s.CreateUser(ctx, CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Department:   u.Department,
		AvatarURL:    u.AvatarURL,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
