package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/internal/admin/mocks"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	"github.com/smallbiznis/hynox/internal/auth/session"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/pkg/repository"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct{}

func (fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (fakeAuthService) Authenticate(ctx context.Context, token string) (*authdomain.Principal, error) {
	if token != "valid" {
		return nil, authdomain.ErrUnauthorized
	}
	return &authdomain.Principal{AdminID: snowflake.ID(7), Email: "owner@example.com"}, nil
}

func (fakeAuthService) TokenTTL() time.Duration {
	return time.Hour
}

func newAdminTestServer(t *testing.T) (*gin.Engine, *mocks.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	adminSvc := mocks.NewMockService(ctrl)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	srv := &Server{
		engine:   engine,
		authsvc:  fakeAuthService{},
		sessions: session.NewManager(config.Config{}),
		adminSvc: adminSvc,
	}
	srv.registerAuthRoutes()
	srv.registerAPIRoutes()
	return engine, adminSvc
}

func serveAdminRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateAdminEmailTakenIsConflict(t *testing.T) {
	engine, adminSvc := newAdminTestServer(t)

	adminSvc.EXPECT().
		Create(gomock.Any(), admindomain.CreateAdminRequest{Email: "a@b.co", Password: "pw"}).
		Return(nil, admindomain.ErrEmailTaken)

	w := serveAdminRequest(engine, http.MethodPost, "/api/admins", `{"email":"a@b.co","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already in use","type":"conflict"}`, w.Body.String())
}

func TestCreateAdminValidationIsBadRequest(t *testing.T) {
	engine, adminSvc := newAdminTestServer(t)

	adminSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, admindomain.ErrInvalidPassword)

	w := serveAdminRequest(engine, http.MethodPost, "/api/admins", `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"password"`)
}

func TestDeleteAdminPassesHardFlag(t *testing.T) {
	engine, adminSvc := newAdminTestServer(t)

	adminSvc.EXPECT().
		Delete(gomock.Any(), admindomain.DeleteAdminRequest{ID: "42", Hard: true}).
		Return(repository.HardDeleted, nil)

	w := serveAdminRequest(engine, http.MethodDelete, "/api/admins/42?hardDelete=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Admin permanently deleted"}`, w.Body.String())
}

func TestMeUsesAuthenticatedAdmin(t *testing.T) {
	engine, adminSvc := newAdminTestServer(t)

	adminSvc.EXPECT().
		GetByID(gomock.Any(), "7").
		Return(&admindomain.Admin{ID: snowflake.ID(7), Email: "owner@example.com"}, nil)

	w := serveAdminRequest(engine, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"owner@example.com"`)
}

func TestAuthRequiredFallsBackToBearerWhenCookieIsStale(t *testing.T) {
	engine, adminSvc := newAdminTestServer(t)
	adminSvc.EXPECT().
		GetByID(gomock.Any(), "7").
		Return(&admindomain.Admin{ID: snowflake.ID(7), Email: "owner@example.com"}, nil).
		Times(2)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "expired"})
	req.Header.Set("Authorization", "Bearer valid")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "valid"})
	req.Header.Set("Authorization", "Bearer expired")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "expired"})
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer "))
}
