package handler

import (
	"errors"
	"net/http"
	"time"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// Login godoc
// @Summary      Login
// @Description  Authenticates by email and password and opens a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  response.Response{data=service.LoginResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Email and password are required"))
		case errors.Is(err, apperr.ErrIncorrectCredential):
			c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, MessageBadCredentials))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	middleware.SetSessionCookie(c, res.Token, maxAge)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Logout godoc
// @Summary      Logout
// @Description  Closes the current session. Logging out without a session is not an error.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, response.Message(http.StatusOK, MessageLoggedOut))
}
