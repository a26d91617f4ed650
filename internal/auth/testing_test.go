// AngelaMos | 2026
// testing_test.go

package auth

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/radar/precatorios-api/internal/config"
	"github.com/radar/precatorios-api/internal/core"
)

func newTestJWTConfig(t *testing.T, ttl time.Duration) config.JWTConfig {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	return config.JWTConfig{
		PrivateKeyPath:    priv,
		PublicKeyPath:     pub,
		AccessTokenExpire: ttl,
		Issuer:            "radar-api",
		Audience:          "radar-web",
	}
}

func newTestJWTManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(newTestJWTConfig(t, ttl))
	require.NoError(t, err)
	return m
}

func newTestHasher(t *testing.T) *core.PasswordHasher {
	t.Helper()

	h, err := core.NewPasswordHasher(config.SecurityConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return h
}

type fakeUserProvider struct {
	mu        sync.Mutex
	users     map[string]*UserInfo
	updateErr error
	updates   int
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: make(map[string]*UserInfo)}
}

func (f *fakeUserProvider) add(u *UserInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

func (f *fakeUserProvider) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserProvider) GetByID(_ context.Context, id string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserProvider) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	f.updates++
	return nil
}

func (f *fakeUserProvider) hashOf(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].PasswordHash
}

func seedUser(
	t *testing.T,
	p *fakeUserProvider,
	h *core.PasswordHasher,
	id, email, password, role string,
	active bool,
) *UserInfo {
	t.Helper()

	hash, err := h.Hash(password)
	require.NoError(t, err)

	u := &UserInfo{
		ID:           id,
		Email:        email,
		Name:         "User " + id,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	p.add(u)
	return u
}
