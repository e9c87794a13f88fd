package handlers

import (
	"net/http"

	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post creation, interaction and feed endpoints.
type PostHandler struct {
	contentService *services.ContentService
	feedService    *services.FeedService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(contentService *services.ContentService, feedService *services.FeedService) *PostHandler {
	return &PostHandler{contentService: contentService, feedService: feedService}
}

// RegisterPostRoutes registers post-related routes.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/all", h.GetAllPosts)
	g.GET("/posts/following", h.GetFollowingPosts)
	g.GET("/posts/user/:username", h.GetUserPosts)
	g.GET("/posts/likes/:id", h.GetLikedPosts)
	g.POST("/posts/create", h.CreatePost)
	g.POST("/posts/like/:id", h.ToggleLike)
	g.POST("/posts/comment/:id", h.AddComment)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post for the caller.
func (h *PostHandler) CreatePost(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.contentService.CreatePost(c.Request().Context(), caller.ID.Hex(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes the caller's own post.
func (h *PostHandler) DeletePost(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.contentService.DeletePost(c.Request().Context(), caller.ID.Hex(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// ToggleLike likes or unlikes a post and returns the resulting like set.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	likes, err := h.contentService.ToggleLike(c.Request().Context(), c.Param("id"), caller.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likes)
}

// AddComment appends a comment and returns the post's comment sequence.
func (h *PostHandler) AddComment(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comments, err := h.contentService.AddComment(c.Request().Context(), c.Param("id"), caller.ID.Hex(), req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetAllPosts returns the global feed.
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.feedService.Global(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFollowingPosts returns posts from users the caller follows.
func (h *PostHandler) GetFollowingPosts(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.feedService.Following(c.Request().Context(), caller.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns the named user's posts.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.feedService.ByAuthor(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetLikedPosts returns the posts liked by the given user.
func (h *PostHandler) GetLikedPosts(c echo.Context) error {
	posts, err := h.feedService.LikedBy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
