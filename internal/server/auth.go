package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
)

type setCookieRequest struct {
	Token string `json:"token"`
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) SetCookie(c *gin.Context) {
	var req setCookieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		AbortWithError(c, newValidationError("token", "missing_token", "token is required"))
		return
	}

	s.sessions.Set(c, token, s.authsvc.TokenTTL())
	c.JSON(http.StatusOK, gin.H{"message": "Cookie set"})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) Me(c *gin.Context) {
	admin, err := s.adminSvc.GetByID(c.Request.Context(), c.GetString(contextAdminIDKey))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}
