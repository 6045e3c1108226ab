package http

import (
	"net/http"
	"time"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return "token"
	}
	return c.Name
}

func (c CookieConfig) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// ParseSameSite maps "strict", "lax" or "none" to the cookie mode. Anything
// else falls back to Strict.
func ParseSameSite(s string) http.SameSite {
	switch s {
	case "none", "None":
		return http.SameSiteNoneMode
	case "lax", "Lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteStrictMode
	}
}
