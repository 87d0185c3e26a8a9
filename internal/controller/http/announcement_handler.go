package http

import (
	"errors"
	"net/http"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/repo/persistent"
	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementUseCase usecase.AnnouncementUseCase
	activityLogUseCase  usecase.ActivityLogUseCase
	logger              *logger.Logger
}

func NewAnnouncementHandler(
	announcementUseCase usecase.AnnouncementUseCase,
	activityLogUseCase usecase.ActivityLogUseCase,
	logger *logger.Logger,
) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementUseCase: announcementUseCase,
		activityLogUseCase:  activityLogUseCase,
		logger:              logger,
	}
}

// ListAnnouncements godoc
// @Summary      List program announcements
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        program_id query string false "Filter by program"
// @Param        status query string false "Filter by status"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	filters := persistent.AnnouncementFilters{
		ProgramID: c.Query("program_id"),
		Status:    c.Query("status"),
	}

	announcements, err := h.announcementUseCase.List(filters)
	if err != nil {
		h.logger.Error("Failed to list announcements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch announcements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": announcements})
}

// GetAnnouncementsForResidents godoc
// @Summary      Published announcements for the resident dashboard
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /announcements [get]
func (h *AnnouncementHandler) GetAnnouncementsForResidents(c *gin.Context) {
	announcements, err := h.announcementUseCase.ListForResidents()
	if err != nil {
		h.logger.Error("Failed to list resident announcements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch announcements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": announcements})
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	announcement, err := h.announcementUseCase.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Announcement not found",
			})
			return
		}
		h.logger.Error("Failed to fetch announcement %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch announcement",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": announcement})
}

// CreateAnnouncement godoc
// @Summary      Create a program announcement
// @Description  Publishing immediately fans out notifications to all residents in the background
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        announcement body usecase.AnnouncementInput true "Announcement"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /admin/announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var input usecase.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	announcement, err := h.announcementUseCase.Create(input)
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
			return
		}
		h.logger.Error("Failed to create announcement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create announcement",
		})
		return
	}

	h.logAction(c, "admin.announcement.created", announcement.ID, "Created announcement: "+announcement.Title)

	message := "Announcement created successfully"
	if announcement.Status == entity.AnnouncementPublished {
		message = "Announcement created and published successfully"
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": announcement})
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	var input usecase.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	announcement, err := h.announcementUseCase.Update(c.Param("id"), input)
	if err != nil {
		var validationErr *usecase.ValidationError
		switch {
		case errors.Is(err, usecase.ErrAnnouncementNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Announcement not found",
			})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		default:
			h.logger.Error("Failed to update announcement %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update announcement",
			})
		}
		return
	}

	h.logAction(c, "admin.announcement.updated", announcement.ID, "Updated announcement: "+announcement.Title)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Announcement updated successfully",
		"data":    announcement,
	})
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	if err := h.announcementUseCase.Delete(id); err != nil {
		if errors.Is(err, usecase.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Announcement not found",
			})
			return
		}
		h.logger.Error("Failed to delete announcement %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete announcement",
		})
		return
	}

	h.logAction(c, "admin.announcement.deleted", id, "Deleted announcement")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Announcement deleted successfully"})
}

// PublishAnnouncement godoc
// @Summary      Publish a draft announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Announcement ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/announcements/{id}/publish [post]
func (h *AnnouncementHandler) PublishAnnouncement(c *gin.Context) {
	announcement, err := h.announcementUseCase.Publish(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Announcement not found",
			})
			return
		}
		h.logger.Error("Failed to publish announcement %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to publish announcement",
		})
		return
	}

	h.logAction(c, "admin.announcement.published", announcement.ID, "Published announcement: "+announcement.Title)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Announcement published successfully",
		"data":    announcement,
	})
}

func (h *AnnouncementHandler) logAction(c *gin.Context, action, modelID, description string) {
	userID := c.GetString("user_id")
	entry := &entity.ActivityLog{
		Action:      action,
		ModelType:   "ProgramAnnouncement",
		ModelID:     modelID,
		Description: description,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
	if userID != "" {
		entry.UserID = &userID
	}
	h.activityLogUseCase.Log(entry)
}
