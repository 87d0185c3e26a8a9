package http

import (
	"errors"
	"net/http"
	"strconv"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	backupUseCase      usecase.BackupUseCase
	activityLogUseCase usecase.ActivityLogUseCase
	logger             *logger.Logger
}

func NewBackupHandler(
	backupUseCase usecase.BackupUseCase,
	activityLogUseCase usecase.ActivityLogUseCase,
	logger *logger.Logger,
) *BackupHandler {
	return &BackupHandler{
		backupUseCase:      backupUseCase,
		activityLogUseCase: activityLogUseCase,
		logger:             logger,
	}
}

// ListBackups godoc
// @Summary      List backup files
// @Tags         backups
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        per_page query int false "Entries per page"
// @Param        type query string false "Filter by type (database, storage, config)"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/backups [get]
func (h *BackupHandler) ListBackups(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	backups, total, err := h.backupUseCase.List(page, perPage, c.Query("type"))
	if err != nil {
		h.logger.Error("Failed to list backups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch backups",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"backups": backups,
			"total":   total,
		},
	})
}

// CreateBackup godoc
// @Summary      Create a new backup
// @Description  type=database runs pg_dump; type=config snapshots the environment file
// @Tags         backups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "Backup type (database or config, default database)"
// @Success      201  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/backups [post]
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	backupType := c.DefaultQuery("type", "database")

	var backup *entity.Backup
	var err error
	switch backupType {
	case "database":
		backup, err = h.backupUseCase.CreateDatabaseBackup()
	case "config":
		backup, err = h.backupUseCase.CreateConfigBackup()
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Invalid backup type",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to create %s backup: %v", backupType, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create backup",
		})
		return
	}

	h.logAction(c, "admin.backup.created", backup.Filename, "Created "+backupType+" backup")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Backup created successfully",
		"data":    backup,
	})
}

func (h *BackupHandler) GetStatistics(c *gin.Context) {
	stats, err := h.backupUseCase.Statistics()
	if err != nil {
		h.logger.Error("Failed to compute backup statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch backup statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// DownloadBackup godoc
// @Summary      Download a backup file
// @Tags         backups
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        filename path string true "Backup filename"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/backups/{filename}/download [get]
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	filename := c.Param("filename")

	path, err := h.backupUseCase.ResolvePath(filename)
	if err != nil {
		h.respondBackupError(c, filename, err)
		return
	}

	h.logAction(c, "admin.backup.downloaded", filename, "Downloaded backup")
	c.FileAttachment(path, filename)
}

func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.backupUseCase.Delete(filename); err != nil {
		h.respondBackupError(c, filename, err)
		return
	}

	h.logAction(c, "admin.backup.deleted", filename, "Deleted backup")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Backup deleted successfully"})
}

func (h *BackupHandler) respondBackupError(c *gin.Context, filename string, err error) {
	switch {
	case errors.Is(err, usecase.ErrBackupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Backup not found"})
	case errors.Is(err, usecase.ErrInvalidBackup):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid backup filename"})
	default:
		h.logger.Error("Backup operation failed for %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Backup operation failed",
		})
	}
}

func (h *BackupHandler) logAction(c *gin.Context, action, modelID, description string) {
	userID := c.GetString("user_id")
	entry := &entity.ActivityLog{
		Action:      action,
		ModelType:   "Backup",
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
