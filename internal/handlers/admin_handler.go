package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/SAP-F-2025/classroom-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// ResetAll wipes every row and every stored upload
// @Summary Reset all data
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ResetResult}
// @Failure 403 {object} ErrorResponse
// @Router /admin/reset [post]
func (h *AdminHandler) ResetAll(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	h.LogWarn(c, "Reset requested")

	result, err := h.adminService.ResetAll(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "All data has been reset", result, "files_removed", result.FilesRemoved)
}
