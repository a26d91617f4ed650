// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/radar/precatorios-api/internal/config"
)

func newTestHasher(t *testing.T, cost int) *PasswordHasher {
	t.Helper()

	h, err := NewPasswordHasher(config.SecurityConfig{BcryptCost: cost})
	require.NoError(t, err)
	return h
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t, bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	ok, err := h.Verify("admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	h := newTestHasher(t, bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t, bcrypt.MinCost)

	ok, err := h.Verify("admin123", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_VerifyTimingSafe(t *testing.T) {
	h := newTestHasher(t, bcrypt.MinCost)

	ok, err := h.VerifyTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	empty := ""
	ok, err = h.VerifyTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, ok)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	ok, err = h.VerifyTimingSafe("secret1", &hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_NeedsRehash(t *testing.T) {
	low := newTestHasher(t, bcrypt.MinCost)
	high := newTestHasher(t, bcrypt.MinCost+1)

	hash, err := low.Hash("secret1")
	require.NoError(t, err)

	assert.False(t, low.NeedsRehash(hash))
	assert.True(t, high.NeedsRehash(hash))
	assert.True(t, low.NeedsRehash("garbage"))
}

func TestNewPasswordHasher_RejectsCostOutOfRange(t *testing.T) {
	_, err := NewPasswordHasher(config.SecurityConfig{BcryptCost: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPasswordHasher(config.SecurityConfig{BcryptCost: bcrypt.MaxCost + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPasswordHasher_RejectsOverBcryptLimit(t *testing.T) {
	h := newTestHasher(t, bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrInvalidInput)

	hash, err := h.Hash(strings.Repeat("é", 36))
	require.NoError(t, err)

	ok, err := h.Verify(strings.Repeat("é", 40), hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.VerifyTimingSafe(strings.Repeat("é", 40), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
