package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	obscontext "github.com/smallbiznis/hynox/internal/observability/context"
)

const (
	contextAdminIDKey    = "admin_id"
	contextAdminEmailKey = "admin_email"
	bearerPrefix         = "bearer "
)

// AuthRequired accepts the token from the auth cookie or a Bearer header.
// A cookie token that fails to authenticate falls back to the header.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.authenticateRequest(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextAdminIDKey, principal.AdminID.String())
		c.Set(contextAdminEmailKey, principal.Email)
		c.Request = c.Request.WithContext(obscontext.WithActor(c.Request.Context(), principal.AdminID.String(), principal.Email))
		c.Next()
	}
}

func (s *Server) authenticateRequest(c *gin.Context) (*authdomain.Principal, error) {
	ctx := c.Request.Context()
	bearer := bearerToken(c.GetHeader("Authorization"))

	if token, ok := s.sessions.ReadToken(c); ok {
		principal, err := s.authsvc.Authenticate(ctx, token)
		if err == nil || bearer == "" || bearer == token {
			return principal, err
		}
	}
	if bearer == "" {
		return nil, ErrUnauthorized
	}
	return s.authsvc.Authenticate(ctx, bearer)
}

// LoginRateLimit throttles login attempts per client IP when a limiter is
// configured.
func (s *Server) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.loginLimiter.Enabled() {
			c.Next()
			return
		}

		decision := s.loginLimiter.Allow(c.Request.Context(), c.ClientIP())
		if !decision.Allowed {
			s.obsMetrics.RecordLoginThrottled(c.Request.Context())
			seconds := int(decision.RetryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			AbortWithError(c, authdomain.ErrRateLimited)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
