package middlewarectx

import (
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/booking-service/internal/config"
)

// SessionCookie выставляет и сбрасывает cookie с токеном.
type SessionCookie struct {
	name     string
	secure   bool
	sameSite http.SameSite
	ttl      time.Duration
}

// NewSessionCookie собирает параметры cookie из конфига.
func NewSessionCookie(cfg config.Auth, ttl time.Duration) *SessionCookie {
	return &SessionCookie{
		name:     cfg.CookieName,
		secure:   cfg.CookieSecure,
		sameSite: parseSameSite(cfg.CookieSameSite),
		ttl:      ttl,
	}
}

// Set записывает токен в cookie ответа.
func (c *SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}

// Clear удаляет cookie на клиенте.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
