package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
	"github.com/vidanueva/church_admin_app/internal/middleware"
)

// financialRequestHandler handles HTTP requests for the approval workflow.
type financialRequestHandler struct {
	requestService portssvc.FinancialRequestSvcFacade
}

// newFinancialRequestHandler creates a new financialRequestHandler.
func newFinancialRequestHandler(rs portssvc.FinancialRequestSvcFacade) *financialRequestHandler {
	return &financialRequestHandler{
		requestService: rs,
	}
}

// registerFinancialRequestRoutes registers routes related to financial requests.
func registerFinancialRequestRoutes(rg *gin.RouterGroup, requestService portssvc.FinancialRequestSvcFacade) {
	h := newFinancialRequestHandler(requestService)

	requests := rg.Group("/financial-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.PUT("/:id", h.updateRequest)
		requests.PATCH("/:id/status", h.changeRequestStatus)
	}
}

// workflowErrorStatus maps service errors to HTTP status codes. State
// conflicts are client errors: the request body was fine but the transition
// is not legal from the current status.
func workflowErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrStateConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// createRequest godoc
// @Summary Create a financial request
// @Description Opens a new financial request in CREATED state
// @Tags financial-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateFinancialRequestRequest true "Request details"
// @Success 201 {object} dto.FinancialRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /financial-requests [post]
func (h *financialRequestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFinancialRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create financial request", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create financial request"})
			return
		}
		logger.Warn("Rejected financial request creation", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFinancialRequestResponse(*created))
}

// listRequests godoc
// @Summary List financial requests
// @Description Lists requests visible to the caller, newest first. Non-privileged callers are scoped automatically.
// @Tags financial-requests
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   branchId query string false "Filter by branch"
// @Param   requesterUserId query string false "Filter by requester"
// @Success 200 {object} dto.ListFinancialRequestsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /financial-requests [get]
func (h *financialRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListFinancialRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), params, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to list financial requests", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to list financial requests"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ListFinancialRequestsResponse{
		Requests: dto.ToFinancialRequestResponses(requests),
	})
}

// getRequest godoc
// @Summary Get a financial request by ID
// @Description Retrieves a single request including its derived progress stepper
// @Tags financial-requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.FinancialRequestDetailResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /financial-requests/{id} [get]
func (h *financialRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.requestService.GetRequestByID(c.Request.Context(), requestID, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get financial request", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to retrieve financial request"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialRequestDetailResponse(*request))
}

// updateRequest godoc
// @Summary Edit a financial request
// @Description Edits a request still in CREATED state; derived fields are recomputed
// @Tags financial-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   request body dto.UpdateFinancialRequestRequest true "Fields to update"
// @Success 200 {object} dto.FinancialRequestResponse
// @Failure 400 {object} map[string]string "Validation error or request no longer editable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /financial-requests/{id} [put]
func (h *financialRequestHandler) updateRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.UpdateFinancialRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.requestService.UpdateRequest(c.Request.Context(), requestID, req, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update financial request", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update financial request"})
			return
		}
		logger.Warn("Rejected financial request update", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialRequestResponse(*updated))
}

// changeRequestStatus godoc
// @Summary Transition a financial request
// @Description Moves the request one hop along the workflow, appending an audit entry
// @Tags financial-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   transition body dto.ChangeRequestStatusRequest true "Target status and payload"
// @Success 200 {object} dto.FinancialRequestResponse
// @Failure 400 {object} map[string]string "Validation error or illegal transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor role may not perform this step"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /financial-requests/{id}/status [patch]
func (h *financialRequestHandler) changeRequestStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.ChangeRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeRequestStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Actor identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.requestService.ChangeRequestStatus(c.Request.Context(), requestID, req, actor)
	if err != nil {
		status := workflowErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to change financial request status", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to change request status"})
			return
		}
		logger.Warn("Rejected status transition",
			slog.String("request_id", requestID),
			slog.String("target_status", req.Status),
			slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialRequestResponse(*updated))
}
