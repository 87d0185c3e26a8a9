package http

import (
	"net/http"

	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionUseCase usecase.PermissionUseCase
	logger            *logger.Logger
}

func NewPermissionHandler(permissionUseCase usecase.PermissionUseCase, logger *logger.Logger) *PermissionHandler {
	return &PermissionHandler{
		permissionUseCase: permissionUseCase,
		logger:            logger,
	}
}

// GetModulePermissions godoc
// @Summary      Module permissions for the authenticated user
// @Description  Admins receive every module; staff receive their stored grants
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /user/permissions [get]
func (h *PermissionHandler) GetModulePermissions(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	permissions, err := h.permissionUseCase.ModulePermissions(userID, role)
	if err != nil {
		h.logger.Error("Failed to resolve permissions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch permissions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"permissions": permissions},
	})
}
