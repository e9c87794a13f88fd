package handlers

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/kumarharsh-connect/talehaven/internal/middleware"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService  *services.AuthService
	firebaseAuth *auth.Client // optional, nil unless credentials configured
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil.
func NewAuthHandler(authService *services.AuthService, firebaseAuth *auth.Client, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		firebaseAuth: firebaseAuth,
		secureCookie: secureCookie,
	}
}

// RegisterAuthRoutes registers the unprotected auth routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	if h.firebaseAuth != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// RegisterSessionRoutes registers the routes requiring authentication.
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	})
}

// Signup registers a new account and starts a session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates by username/password and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

// FirebaseLogin exchanges a verified Firebase ID token for a session.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	decoded, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Firebase token has no email claim")
	}

	user, token, err := h.authService.LoginWithEmail(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Me returns the caller's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
