package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ActivityLogHandler struct {
	activityLogUseCase usecase.ActivityLogUseCase
	logger             *logger.Logger
}

func NewActivityLogHandler(activityLogUseCase usecase.ActivityLogUseCase, logger *logger.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityLogUseCase: activityLogUseCase,
		logger:             logger,
	}
}

func parseLogFilters(c *gin.Context) entity.LogFilters {
	filters := entity.LogFilters{
		UserID:    c.Query("user_id"),
		Action:    c.Query("action"),
		ModelType: c.Query("model_type"),
		Search:    c.Query("search"),
		Page:      1,
		PerPage:   20,
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filters.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		filters.PerPage = perPage
	}
	if from, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		filters.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		// Include the whole end day
		end := to.Add(24*time.Hour - time.Second)
		filters.DateTo = &end
	}
	return filters
}

// ListLogs godoc
// @Summary      List activity logs
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query string false "Filter by user"
// @Param        action query string false "Filter by action"
// @Param        model_type query string false "Filter by model type"
// @Param        date_from query string false "Start date (YYYY-MM-DD)"
// @Param        date_to query string false "End date (YYYY-MM-DD)"
// @Param        search query string false "Search in description and action"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Entries per page (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/activity-logs [get]
func (h *ActivityLogHandler) ListLogs(c *gin.Context) {
	filters := parseLogFilters(c)

	logs, total, err := h.activityLogUseCase.List(filters)
	if err != nil {
		h.logger.Error("Failed to list activity logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch activity logs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"logs":     logs,
			"total":    total,
			"page":     filters.Page,
			"per_page": filters.PerPage,
		},
	})
}

func (h *ActivityLogHandler) GetLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity log not found"})
		return
	}

	log, err := h.activityLogUseCase.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity log not found"})
			return
		}
		h.logger.Error("Failed to fetch activity log %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch activity log",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": log})
}

// GetStatistics godoc
// @Summary      Activity log statistics
// @Description  Aggregates over the given range, defaulting to the last 30 days
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        date_from query string false "Start date (YYYY-MM-DD)"
// @Param        date_to query string false "End date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/activity-logs/statistics [get]
func (h *ActivityLogHandler) GetStatistics(c *gin.Context) {
	var from, to *time.Time
	if parsed, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		from = &parsed
	}
	if parsed, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		end := parsed.Add(24*time.Hour - time.Second)
		to = &end
	}

	stats, err := h.activityLogUseCase.Statistics(from, to)
	if err != nil {
		h.logger.Error("Failed to compute activity log statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *ActivityLogHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.activityLogUseCase.FilterOptions()
	if err != nil {
		h.logger.Error("Failed to fetch log filter options: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch filter options",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

// ExportLogs godoc
// @Summary      Export activity logs as CSV
// @Tags         activity-logs
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /admin/activity-logs/export [get]
func (h *ActivityLogHandler) ExportLogs(c *gin.Context) {
	filters := parseLogFilters(c)

	logs, err := h.activityLogUseCase.Export(filters)
	if err != nil {
		h.logger.Error("Failed to export activity logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to export activity logs",
		})
		return
	}

	filename := "activity_logs_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"ID", "User", "Action", "Model Type", "Model ID", "Description", "IP Address", "Date"})
	for _, log := range logs {
		userName := ""
		if log.User != nil {
			userName = log.User.Name
		}
		writer.Write([]string{
			strconv.FormatInt(log.ID, 10),
			userName,
			log.Action,
			log.ModelType,
			log.ModelID,
			log.Description,
			log.IPAddress,
			log.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	writer.Flush()
}

// CleanupLogs godoc
// @Summary      Delete old activity logs
// @Tags         activity-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Retention in days (default 90)"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/activity-logs/cleanup [post]
func (h *ActivityLogHandler) CleanupLogs(c *gin.Context) {
	days := 0
	if parsed, err := strconv.Atoi(c.Query("days")); err == nil {
		days = parsed
	}

	deleted, err := h.activityLogUseCase.Cleanup(days)
	if err != nil {
		h.logger.Error("Failed to clean up activity logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to clean up activity logs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deleted %d old activity logs", deleted),
		"data":    gin.H{"deleted_count": deleted},
	})
}

// GetInactiveResidents godoc
// @Summary      Residents with no activity in the last year
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        per_page query int false "Entries per page"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/activity-logs/inactive-residents [get]
func (h *ActivityLogHandler) GetInactiveResidents(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	residents, total, err := h.activityLogUseCase.InactiveResidents(page, perPage)
	if err != nil {
		h.logger.Error("Failed to fetch inactive residents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch inactive residents",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"residents": residents,
			"total":     total,
		},
	})
}

func (h *ActivityLogHandler) FlagInactiveResidents(c *gin.Context) {
	flagged, err := h.activityLogUseCase.FlagInactiveResidents()
	if err != nil {
		h.logger.Error("Failed to flag inactive residents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to flag inactive residents",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Flagged %d residents for review", flagged),
		"data":    gin.H{"flagged_count": flagged},
	})
}

func (h *ActivityLogHandler) GetFlaggedCount(c *gin.Context) {
	count, err := h.activityLogUseCase.FlaggedCount()
	if err != nil {
		h.logger.Error("Failed to count flagged residents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to count flagged residents",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"flagged_count": count}})
}
