package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
	"github.com/vidanueva/church_admin_app/internal/middleware"
)

// financeConfigHandler handles HTTP requests for the singleton financial configuration.
type financeConfigHandler struct {
	configService portssvc.GlobalConfigSvcFacade
}

// newFinanceConfigHandler creates a new financeConfigHandler.
func newFinanceConfigHandler(cs portssvc.GlobalConfigSvcFacade) *financeConfigHandler {
	return &financeConfigHandler{
		configService: cs,
	}
}

// registerFinanceConfigRoutes registers routes related to the financial configuration.
func registerFinanceConfigRoutes(rg *gin.RouterGroup, configService portssvc.GlobalConfigSvcFacade) {
	h := newFinanceConfigHandler(configService)

	config := rg.Group("/finance-config")
	{
		config.GET("", h.getConfig)
		config.PATCH("", h.updateConfig)
	}
}

// getConfig godoc
// @Summary Get the financial configuration
// @Description Retrieves the singleton configuration, creating it with defaults on first read
// @Tags finance-config
// @Produce  json
// @Success 200 {object} dto.GlobalConfigResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /finance-config [get]
func (h *financeConfigHandler) getConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	config, err := h.configService.GetConfig(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get finance config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve configuration"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGlobalConfigResponse(*config))
}

// updateConfig godoc
// @Summary Update the financial configuration
// @Description Applies a partial update to the configuration. Admin only.
// @Tags finance-config
// @Accept  json
// @Produce  json
// @Param   config body dto.UpdateGlobalConfigRequest true "Fields to update"
// @Success 200 {object} dto.GlobalConfigResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /finance-config [patch]
func (h *financeConfigHandler) updateConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateGlobalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	config, err := h.configService.UpdateConfig(c.Request.Context(), req, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update finance config", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update configuration"})
			return
		}
		logger.Warn("Rejected finance config update", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToGlobalConfigResponse(*config))
}
