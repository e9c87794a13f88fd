package handlers

import (
	"net/http"
	"strconv"

	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.DELETE("/notifications", h.DeleteNotifications)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// GetNotifications returns the caller's notifications newest first. Fetching
// marks them read; the response carries the pre-read flags.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.ListForRecipient(c.Request().Context(), caller.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// DeleteNotifications removes all of the caller's notifications.
func (h *NotificationHandler) DeleteNotifications(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.DeleteAll(c.Request().Context(), caller.ID.Hex()); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications deleted successfully"})
}

// DeleteNotification removes one of the caller's notifications.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationService.DeleteOne(c.Request().Context(), caller.ID.Hex(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted successfully"})
}
