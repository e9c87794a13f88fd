package middleware

import (
	"net/http"

	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie carrying the JWT.
const CookieName = "token"

// ContextUserKey is where the authenticated user is stashed on the request.
const ContextUserKey = "user"

// Auth parses the session cookie, validates the token and loads the caller's
// user record into the request context. Downstream handlers receive an
// already-verified identity and never touch credentials.
func Auth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: no token provided")
			}

			userID, err := auth.ParseToken(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: invalid token")
			}

			user, err := auth.Me(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: user not found")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user set by Auth, or nil.
func UserFromContext(c echo.Context) *models.User {
	user, _ := c.Get(ContextUserKey).(*models.User)
	return user
}
