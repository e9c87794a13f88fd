package handlers

import (
	"net/http"
	"strconv"

	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile, follow-graph and search endpoints.
type UserHandler struct {
	graphService *services.GraphService
	authService  *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(graphService *services.GraphService, authService *services.AuthService) *UserHandler {
	return &UserHandler{graphService: graphService, authService: authService}
}

// RegisterUserRoutes registers user-related routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/profile/:username", h.GetProfile)
	g.PUT("/users/profile", h.UpdateProfile)
	g.GET("/users/suggested", h.GetSuggestedUsers)
	g.POST("/users/follow/:id", h.ToggleFollow)
	g.GET("/users/followers/:username", h.GetFollowers)
	g.GET("/users/following/:username", h.GetFollowing)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile returns a user's public profile by username.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.authService.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies profile edits for the caller.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), caller.ID.Hex(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ToggleFollow follows or unfollows the target user.
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	following, err := h.graphService.ToggleFollow(c.Request().Context(), caller.ID.Hex(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	message := "User unfollowed successfully"
	if following {
		message = "User followed successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "following": following})
}

// GetSuggestedUsers returns random follow suggestions for the caller.
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	count, _ := strconv.Atoi(c.QueryParam("count"))
	users, err := h.graphService.SuggestUsers(c.Request().Context(), caller.ID.Hex(), count)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetFollowers lists the named user's followers.
func (h *UserHandler) GetFollowers(c echo.Context) error {
	followers, err := h.graphService.ListFollowers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists who the named user follows.
func (h *UserHandler) GetFollowing(c echo.Context) error {
	following, err := h.graphService.ListFollowing(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}

// SearchUsers matches users by username or full name.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.graphService.SearchUsers(c.Request().Context(), c.QueryParam("search_query"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
