package handlers

import (
	"errors"
	"net/http"

	"github.com/lookshare/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/user/:id", h.GetUserNotifications)
	g.PATCH("/notifications/:notifId/seen", h.MarkAsSeen)
}

// GetUserNotifications lists a user's notifications, newest first
func (h *NotificationHandler) GetUserNotifications(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id requis")
	}

	notifications, err := h.notificationRepository.GetByRecipient(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkAsSeen sets a notification's seen flag and returns the updated record
func (h *NotificationHandler) MarkAsSeen(c echo.Context) error {
	notification, err := h.notificationRepository.MarkSeen(c.Request().Context(), c.Param("notifId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification non trouvée")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, notification)
}
