// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/radar/precatorios-api/internal/core"
)

const (
	PrincipalKey contextKey = "principal"
	ClaimsKey    contextKey = "jwt_claims"

	adminRole = "ADMIN"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// PrincipalResolver turns verified claims into the current state of the
// user. It must return an error wrapping core.ErrUnauthorized when the user
// is gone or deactivated.
type PrincipalResolver interface {
	ResolvePrincipal(
		ctx context.Context,
		claims *AccessTokenClaims,
	) (*Principal, error)
}

type AccessTokenClaims struct {
	UserID     string
	Email      string
	Role       string
	Department string
	ExpiresAt  time.Time
}

type Principal struct {
	ID         string
	Email      string
	Name       string
	Role       string
	Department *string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == adminRole
}

func Authenticator(
	verifier TokenVerifier,
	resolver PrincipalResolver,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)
			if token == "" {
				core.Unauthorized(w, "")
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", "error", err)
				core.Unauthorized(w, "")
				return
			}

			principal, err := resolver.ResolvePrincipal(r.Context(), claims)
			if err != nil {
				if errors.Is(err, core.ErrUnauthorized) {
					core.Unauthorized(w, "")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				core.Unauthorized(w, "")
				return
			}

			if _, ok := roleSet[principal.Role]; !ok {
				core.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(adminRole)(next)
}

// ExtractToken reads the session cookie only. Authorization headers are
// ignored so the token never has to live in client-readable storage.
func ExtractToken(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(PrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.ID
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.Role
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}
