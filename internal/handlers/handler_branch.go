package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
	"github.com/vidanueva/church_admin_app/internal/middleware"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

// newBranchHandler creates a new branchHandler.
func newBranchHandler(bs portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{
		branchService: bs,
	}
}

// registerBranchRoutes registers routes related to branches.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade) {
	h := newBranchHandler(branchService)

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:id", h.getBranch)
		branches.PUT("/:id", h.updateBranch)
	}
}

// createBranch godoc
// @Summary Create a branch
// @Description Registers a new branch, optionally under a parent
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create branch", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create branch"})
			return
		}
		logger.Warn("Rejected branch creation", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBranchResponse(*branch))
}

// listBranches godoc
// @Summary List branches
// @Description Lists all branches, roots first
// @Tags branches
// @Produce  json
// @Success 200 {object} dto.ListBranchesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list branches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list branches"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBranchesResponse{Branches: dto.ToBranchResponses(branches)})
}

// getBranch godoc
// @Summary Get a branch by ID
// @Tags branches
// @Produce  json
// @Param   id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get branch", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to retrieve branch"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(*branch))
}

// updateBranch godoc
// @Summary Edit a branch
// @Description Edits branch fields; re-parenting refreshes the whole subtree
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   id path string true "Branch ID"
// @Param   branch body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), branchID, req, updaterUserID)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update branch", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update branch"})
			return
		}
		logger.Warn("Rejected branch update", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(*branch))
}
