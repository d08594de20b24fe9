package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Stub services returning canned results, used to pin the HTTP status code
// and message each error kind maps to.

type stubPermissionService struct {
	res  *service.PermissionResponse
	list []service.PermissionResponse
	err  error
}

func (s *stubPermissionService) Create(context.Context, string, service.CreatePermissionRequest) (*service.PermissionResponse, error) {
	return s.res, s.err
}
func (s *stubPermissionService) List(context.Context) ([]service.PermissionResponse, error) {
	return s.list, s.err
}
func (s *stubPermissionService) Update(context.Context, string, uint, service.UpdatePermissionRequest) (*service.PermissionResponse, error) {
	return s.res, s.err
}
func (s *stubPermissionService) Delete(context.Context, string, uint) error { return s.err }

type stubRoleService struct {
	res        *service.RoleResponse
	list       []service.RoleResponse
	assignment *service.AssignmentResponse
	perms      []service.PermissionResponse
	err        error
}

func (s *stubRoleService) Create(context.Context, string, service.CreateRoleRequest) (*service.RoleResponse, error) {
	return s.res, s.err
}
func (s *stubRoleService) List(context.Context) ([]service.RoleResponse, error) {
	return s.list, s.err
}
func (s *stubRoleService) Get(context.Context, uint) (*service.RoleResponse, error) {
	return s.res, s.err
}
func (s *stubRoleService) Update(context.Context, string, uint, service.UpdateRoleRequest) (*service.RoleResponse, error) {
	return s.res, s.err
}
func (s *stubRoleService) Delete(context.Context, string, uint) error { return s.err }
func (s *stubRoleService) AssignPermission(context.Context, string, service.AssignPermissionRequest) (*service.AssignmentResponse, error) {
	return s.assignment, s.err
}
func (s *stubRoleService) ListRolePermissions(context.Context, uint) ([]service.PermissionResponse, error) {
	return s.perms, s.err
}

type stubAccountService struct {
	res  *service.AccountResponse
	list *service.AccountListResponse
	err  error
}

func (s *stubAccountService) Create(context.Context, string, service.CreateAccountRequest) (*service.AccountResponse, error) {
	return s.res, s.err
}
func (s *stubAccountService) Get(context.Context, string) (*service.AccountResponse, error) {
	return s.res, s.err
}
func (s *stubAccountService) List(context.Context, pagination.Params) (*service.AccountListResponse, error) {
	return s.list, s.err
}
func (s *stubAccountService) Update(context.Context, string, string, service.UpdateAccountRequest) (*service.AccountResponse, error) {
	return s.res, s.err
}
func (s *stubAccountService) ChangePassword(context.Context, string, string, service.ChangePasswordRequest) error {
	return s.err
}

type stubAuthService struct {
	login *service.LoginResponse
	id    string
	err   error
}

func (s *stubAuthService) Login(context.Context, service.LoginRequest) (*service.LoginResponse, error) {
	return s.login, s.err
}
func (s *stubAuthService) Logout(context.Context, string) error { return s.err }
func (s *stubAuthService) Validate(context.Context, string) (string, error) {
	return s.id, s.err
}

// testAuth injects a fixed authenticated account without touching the session store.
func testAuth(c *gin.Context) {
	c.Set(middleware.ContextAccountID, "00001")
	c.Set(middleware.ContextSessionToken, "test-token")
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

