package http

import (
	"errors"
	"net/http"

	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// GetNotifications godoc
// @Summary      Get unified notifications
// @Description  Merged feed from both notification stores for the authenticated resident, newest first
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	notifications, unreadCount, err := h.notificationUseCase.ListNotifications(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Resident profile not found",
			})
			return
		}
		h.logger.Error("Failed to list notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"notifications": notifications,
			"unread_count":  unreadCount,
		},
	})
}

// MarkAsRead godoc
// @Summary      Mark one notification as read
// @Description  Resolves the id against the framework store first, then the custom store
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	source, err := h.notificationUseCase.MarkAsRead(notificationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Resident profile not found",
			})
		case errors.Is(err, usecase.ErrNotificationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Notification not found",
			})
		default:
			h.logger.Error("Failed to mark notification %s read for user %s: %v", notificationID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to mark notification as read",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
		"data":    gin.H{"id": notificationID, "source": source},
	})
}

// MarkAllAsRead godoc
// @Summary      Mark all notifications as read
// @Description  Flips every unread entry in both stores atomically
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.notificationUseCase.MarkAllAsRead(userID); err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Resident profile not found",
			})
			return
		}
		h.logger.Error("Failed to mark all notifications read for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to mark all notifications as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked as read",
	})
}
