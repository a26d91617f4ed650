// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radar/precatorios-api/internal/config"
	"github.com/radar/precatorios-api/internal/core"
	"github.com/radar/precatorios-api/internal/middleware"
)

type handlerFixture struct {
	*serviceFixture
	router  chi.Router
	cookies CookieSettings
}

func newHandlerFixture(t *testing.T, production bool) *handlerFixture {
	t.Helper()

	f := newServiceFixture(t)
	cookies := NewCookieSettings(
		config.CookieConfig{Name: "access_token", Path: "/"},
		production,
		f.jwt.TokenTTL(),
	)

	router := chi.NewRouter()
	NewHandler(f.svc, cookies).RegisterRoutes(
		router,
		middleware.Authenticator(f.jwt, f.svc, cookies.Name),
	)

	return &handlerFixture{serviceFixture: f, router: router, cookies: cookies}
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func loginRequest(email, password string) *http.Request {
	body := `{"email":"` + email + `","senha":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			return c
		}
	}
	t.Fatalf("no access_token cookie in response")
	return nil
}

func TestHandler_LoginSetsCookie(t *testing.T) {
	f := newHandlerFixture(t, false)

	rec := f.do(loginRequest("admin@radar.com", "admin123"))
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User map[string]any `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "admin@radar.com", resp.Data.User["email"])
	assert.Equal(t, "ADMIN", resp.Data.User["role"])
	assert.NotContains(t, resp.Data.User, "senha")
	assert.NotContains(t, resp.Data.User, "passwordHash")
	assert.NotContains(t, rec.Body.String(), cookie.Value)
}

func TestHandler_LoginSecureCookieInProduction(t *testing.T) {
	f := newHandlerFixture(t, true)

	rec := f.do(loginRequest("admin@radar.com", "admin123"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sessionCookie(t, rec).Secure)
}

func TestHandler_LoginRejections(t *testing.T) {
	f := newHandlerFixture(t, false)

	tests := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{"wrong password", loginRequest("admin@radar.com", "nope"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown user", loginRequest("ghost@radar.com", "admin123"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive user", loginRequest("old@radar.com", "secret1"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"malformed email", loginRequest("not-an-email", "admin123"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{
			"password over bcrypt limit",
			loginRequest("admin@radar.com", strings.Repeat("é", 40)),
			http.StatusUnauthorized,
			"INVALID_CREDENTIALS",
		},
		{"empty email", loginRequest("", "admin123"), http.StatusBadRequest, "BAD_REQUEST"},
		{
			"malformed body",
			httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{")),
			http.StatusBadRequest,
			"BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Result().Cookies())

			var resp core.Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandler_LogoutClearsCookie(t *testing.T) {
	f := newHandlerFixture(t, false)

	rec := f.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.True(t, cookie.HttpOnly)
}

func TestHandler_MeWithSession(t *testing.T) {
	f := newHandlerFixture(t, false)

	login := f.do(loginRequest("admin@radar.com", "admin123"))
	require.Equal(t, http.StatusOK, login.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(sessionCookie(t, login))

	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, f.admin.ID, resp.Data.ID)
	assert.Equal(t, "ADMIN", resp.Data.Role)
}

func TestHandler_MeRejections(t *testing.T) {
	f := newHandlerFixture(t, false)

	token, _, err := f.jwt.CreateAccessToken(TokenClaims{
		UserID: f.admin.ID,
		Email:  f.admin.Email,
		Role:   f.admin.Role,
	})
	require.NoError(t, err)

	inactiveToken, _, err := f.jwt.CreateAccessToken(TokenClaims{
		UserID: f.inactive.ID,
		Email:  f.inactive.Email,
		Role:   f.inactive.Role,
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no cookie", func(*http.Request) {}},
		{"garbage cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
		}},
		{"bearer header only", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}},
		{"deactivated user", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: inactiveToken})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			tt.setup(req)

			rec := f.do(req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
