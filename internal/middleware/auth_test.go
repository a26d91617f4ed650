// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radar/precatorios-api/internal/core"
)

const testCookie = "access_token"

type fakeVerifier struct {
	claims map[string]*AccessTokenClaims
}

func (f *fakeVerifier) VerifyAccessToken(_ context.Context, token string) (*AccessTokenClaims, error) {
	c, ok := f.claims[token]
	if !ok {
		return nil, core.ErrTokenInvalid
	}
	return c, nil
}

type fakeResolver struct {
	principals map[string]*Principal
	err        error
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, claims *AccessTokenClaims) (*Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.principals[claims.UserID]
	if !ok {
		return nil, fmt.Errorf("resolve: %w", core.ErrUnauthorized)
	}
	return p, nil
}

func newAuthFixture() (*fakeVerifier, *fakeResolver) {
	verifier := &fakeVerifier{claims: map[string]*AccessTokenClaims{
		"admin-token":  {UserID: "admin-1", Role: "ADMIN"},
		"viewer-token": {UserID: "viewer-1", Role: "VIEWER"},
		"gone-token":   {UserID: "gone-1", Role: "ADMIN"},
	}}
	resolver := &fakeResolver{principals: map[string]*Principal{
		"admin-1":  {ID: "admin-1", Role: "ADMIN"},
		"viewer-1": {ID: "viewer-1", Role: "VIEWER"},
	}}
	return verifier, resolver
}

func okHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, GetPrincipal(r.Context()))
		require.NotNil(t, GetClaims(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithCookie(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	return req
}

func TestAuthenticator(t *testing.T) {
	verifier, resolver := newAuthFixture()
	handler := Authenticator(verifier, resolver, testCookie)(okHandler(t))

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"valid cookie", requestWithCookie("admin-token"), http.StatusOK},
		{"missing cookie", requestWithCookie(""), http.StatusUnauthorized},
		{"invalid token", requestWithCookie("forged"), http.StatusUnauthorized},
		{"user no longer exists", requestWithCookie("gone-token"), http.StatusUnauthorized},
		{
			"authorization header is ignored",
			func() *http.Request {
				r := requestWithCookie("")
				r.Header.Set("Authorization", "Bearer admin-token")
				return r
			}(),
			http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthenticator_ResolverFailureIs500(t *testing.T) {
	verifier, resolver := newAuthFixture()
	resolver.err = errors.New("connection reset")

	rec := httptest.NewRecorder()
	Authenticator(verifier, resolver, testCookie)(okHandler(t)).
		ServeHTTP(rec, requestWithCookie("admin-token"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	verifier, resolver := newAuthFixture()
	handler := Authenticator(verifier, resolver, testCookie)(RequireAdmin(okHandler(t)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("admin-token"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("viewer-token"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole("ADMIN", "OPERATOR")(okHandler(t)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetPrincipal(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetUserRole(ctx))
	assert.Nil(t, GetClaims(ctx))

	ctx = WithPrincipal(ctx, &Principal{ID: "u1", Role: "OPERATOR"})
	assert.Equal(t, "u1", GetUserID(ctx))
	assert.Equal(t, "OPERATOR", GetUserRole(ctx))
	assert.False(t, GetPrincipal(ctx).IsAdmin())
}

func TestPrincipal_IsAdminNil(t *testing.T) {
	var p *Principal
	assert.False(t, p.IsAdmin())
}
