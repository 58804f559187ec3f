package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/hynox/internal/config"
)

const DefaultCookieName = "auth-token"

// Manager writes and reads the auth-token cookie. The cookie is always
// httpOnly, SameSite=Strict and scoped to "/".
type Manager struct {
	name   string
	secure bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{name: DefaultCookieName, secure: cfg.AuthCookieSecure}
}

func (m *Manager) CookieName() string { return m.name }

// ReadToken returns the cookie value, ignoring a missing or blank cookie.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(m.name)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(cookie.Value)
	return token, token != ""
}

// Set stores value for ttl. A non-positive ttl writes a session cookie.
func (m *Manager) Set(c *gin.Context, value string, ttl time.Duration) {
	http.SetCookie(c.Writer, m.cookie(value, int(ttl/time.Second)))
}

// Clear expires the cookie in the browser.
func (m *Manager) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
