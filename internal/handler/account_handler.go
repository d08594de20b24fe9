package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	accounts := router.Group("/api/accounts")
	accounts.Use(auth)
	{
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.POST("", h.CreateAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.POST("/change-password", h.ChangePassword)
	}

	me := router.Group("/api/me")
	me.Use(auth)
	{
		me.GET("", h.Me)
	}
}

// accountCreateError maps account creation failures to their response. The
// more specific validation kinds are matched before the generic ones.
func accountCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrPhoneFormat):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessagePhoneFormat))
	case errors.Is(err, apperr.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessagePasswordTooShort))
	case errors.Is(err, apperr.ErrRoleNotFound):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageRoleNotFound))
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageEmailExists))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Returns accounts with role names, paginated
// @Tags         accounts
// @Produce      json
// @Security     SessionAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=service.AccountListResponse}
// @Failure      401  {object}  response.Response
// @Router       /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	params := pagination.Parse(c)

	accounts, err := h.accountService.List(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, accounts))
}

// GetAccount godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  string  true  "Account ID"
// @Success      200  {object}  response.Response{data=service.AccountResponse}
// @Failure      404  {object}  response.Response
// @Router       /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, account))
}

// Me godoc
// @Summary      Get the authenticated account
// @Tags         accounts
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  response.Response{data=service.AccountResponse}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	account, err := h.accountService.Get(c.Request.Context(), actorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, account))
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Creates an account with a generated five-digit id, validating phone, password, gender and role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        payload  body      service.CreateAccountRequest  true  "Create Account Payload"
// @Success      201      {object}  response.Response{data=service.AccountResponse}
// @Failure      400      {object}  response.Response
// @Router       /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		accountCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, account))
}

// UpdateAccount godoc
// @Summary      Update an account
// @Description  Overwrites the provided fields and optionally toggles the status
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id       path      string                        true  "Account ID"
// @Param        payload  body      service.UpdateAccountRequest  true  "Update Account Payload"
// @Success      200      {object}  response.Response{data=service.AccountResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), actorID(c), c.Param("id"), req)
	if err != nil {
		accountCreateError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, account))
}

// ChangePassword godoc
// @Summary      Change the authenticated account's password
// @Description  Verifies the old password, stores the new hash and revokes every other session
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        payload  body      service.ChangePasswordRequest  true  "Change Password Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /accounts/change-password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	keepToken := c.GetString(middleware.ContextSessionToken)
	err := h.accountService.ChangePassword(c.Request.Context(), actorID(c), keepToken, req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrIncorrectCredential):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageIncorrectPassword))
		case errors.Is(err, apperr.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessagePasswordTooShort))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Message(http.StatusOK, MessageChangedPassword))
}
