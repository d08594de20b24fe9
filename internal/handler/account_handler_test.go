package handler

import (
	"net/http"
	"testing"

	"backend/internal/service"
	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func accountRouter(svc service.AccountService) *gin.Engine {
	router := newTestRouter()
	NewAccountHandler(svc).RegisterRoutes(router.Group(""), testAuth)
	return router
}

func TestCreateAccountPhoneFormat(t *testing.T) {
	svc := &stubAccountService{err: apperr.ErrPhoneFormat}
	router := accountRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{"phone_number":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MessagePhoneFormat, env.Error)
}

func TestCreateAccountShortPassword(t *testing.T) {
	svc := &stubAccountService{err: apperr.ErrPasswordTooShort}
	router := accountRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{"password":"short12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MessagePasswordTooShort, env.Error)
}

func TestCreateAccountRoleNotFound(t *testing.T) {
	svc := &stubAccountService{err: apperr.ErrRoleNotFound}
	router := accountRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{"role_id":42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MessageRoleNotFound, env.Error)
}

func TestCreateAccountEmailExists(t *testing.T) {
	svc := &stubAccountService{err: apperr.ErrConflict}
	router := accountRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/accounts", `{"email":"a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MessageEmailExists, env.Error)
}

func TestCreateAccountCreated(t *testing.T) {
	svc := &stubAccountService{res: &service.AccountResponse{AccountID: "12345", UserName: "Lan Pham"}}
	router := accountRouter(svc)

	w, _ := doJSON(t, router, http.MethodPost, "/api/accounts", `{"user_name":"Lan Pham"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc := &stubAccountService{err: apperr.ErrIncorrectCredential}
	router := accountRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/api/accounts/change-password", `{"old_password":"x","new_password":"newpassword2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MessageIncorrectPassword, env.Error)
}

func TestMe(t *testing.T) {
	svc := &stubAccountService{res: &service.AccountResponse{AccountID: "00001", UserName: "Administrator"}}
	router := accountRouter(svc)

	w, _ := doJSON(t, router, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
