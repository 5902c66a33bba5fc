package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snapseek/api/internal/crypto"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "snapseek_session"

// Cookies reads and writes the session cookie, sealing the token so the
// browser only ever holds an opaque, tamper-evident value.
type Cookies struct {
	sealer     *crypto.CookieSealer
	production bool
}

// NewCookies creates a cookie codec from the session secret. In production
// the cookie is Secure with SameSite=None so the cross-origin client can
// send it; in development it is Lax over plain HTTP.
func NewCookies(secret string, production bool) (*Cookies, error) {
	sealer, err := crypto.NewCookieSealer(secret)
	if err != nil {
		return nil, err
	}
	return &Cookies{sealer: sealer, production: production}, nil
}

// Write issues the session cookie carrying the sealed token.
func (k *Cookies) Write(c *gin.Context, token string) error {
	sealed, err := k.sealer.Seal(token)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   k.production,
		SameSite: k.sameSite(),
	})
	return nil
}

// Read extracts the session token from the request cookie. ok is false when
// the cookie is absent or fails authentication.
func (k *Cookies) Read(c *gin.Context) (token string, ok bool) {
	sealed, err := c.Cookie(CookieName)
	if err != nil || sealed == "" {
		return "", false
	}

	token, err = k.sealer.Open(sealed)
	if err != nil {
		return "", false
	}
	return token, true
}

// Clear expires the session cookie.
func (k *Cookies) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   k.production,
		SameSite: k.sameSite(),
	})
}

func (k *Cookies) sameSite() http.SameSite {
	if k.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
