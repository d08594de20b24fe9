package middleware

import (
	"net/http"
	"os"
	"strings"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie the session token travels in.
	SessionCookieName = "session_token"
	// ContextAccountID is the gin context key holding the authenticated account id.
	ContextAccountID = "accountID"
	// ContextSessionToken is the gin context key holding the raw session token.
	ContextSessionToken = "sessionToken"
)

// SetSessionCookie stores the session token as an HttpOnly cookie
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// TokenFromRequest extracts the session token from the request, cookie first
// with an Authorization header fallback. Returns "" when neither is present.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SessionRequired validates the session token and stores the account id and
// token on the gin context for handlers downstream
func SessionRequired(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Login is required"))
			return
		}

		accountID, err := authService.Validate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Login is required"))
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextSessionToken, token)

		c.Next()
	}
}
