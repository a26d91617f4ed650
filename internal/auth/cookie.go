// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"

	"github.com/radar/precatorios-api/internal/config"
)

type CookieSettings struct {
	Name   string
	Domain string
	Path   string
	Secure bool
	MaxAge time.Duration
}

func NewCookieSettings(
	cfg config.CookieConfig,
	isProduction bool,
	maxAge time.Duration,
) CookieSettings {
	path := cfg.Path
	if path == "" {
		path = "/"
	}

	return CookieSettings{
		Name:   cfg.Name,
		Domain: cfg.Domain,
		Path:   path,
		Secure: cfg.Secure || isProduction,
		MaxAge: maxAge,
	}
}

func (c CookieSettings) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   int(c.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieSettings) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
