package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
)

func (s *Server) CreateAdmin(c *gin.Context) {
	var req admindomain.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.adminSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListAdmins(c *gin.Context) {
	resp, err := s.adminSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAdminByID(c *gin.Context) {
	resp, err := s.adminSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateAdmin(c *gin.Context) {
	var req admindomain.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.adminSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteAdmin(c *gin.Context) {
	hard, err := hardDeleteParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	outcome, err := s.adminSvc.Delete(c.Request.Context(), admindomain.DeleteAdminRequest{
		ID:   strings.TrimSpace(c.Param("id")),
		Hard: hard,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteMessage("Admin", outcome))
}

func isAdminValidationError(err error) bool {
	switch err {
	case admindomain.ErrInvalidEmail,
		admindomain.ErrInvalidPassword,
		admindomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
