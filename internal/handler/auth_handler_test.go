package handler

import (
	"net/http"
	"testing"
	"time"

	"backend/internal/service"
	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter(svc service.AuthService) *gin.Engine {
	router := newTestRouter()
	NewAuthHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func TestLoginOK(t *testing.T) {
	svc := &stubAuthService{login: &service.LoginResponse{
		Token:     "abc123",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	router := authRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"longenough1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)

	// The session token also travels as an HttpOnly cookie.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "session_token" && c.Value == "abc123" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: apperr.ErrIncorrectCredential}
	router := authRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MessageBadCredentials, env.Error)
}

func TestLoginMissingFields(t *testing.T) {
	svc := &stubAuthService{err: apperr.ErrValidation}
	router := authRouter(svc)

	w, _ := doJSON(t, router, http.MethodPost, "/api/auth/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	router := authRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)
}
