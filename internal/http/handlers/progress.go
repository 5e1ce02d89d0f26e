package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivedu/courselink-backend/internal/http/response"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
	"github.com/nivedu/courselink-backend/internal/services"
)

type ProgressHandler struct {
	log         *logger.Logger
	progressSvc services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressSvc services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:         log.With("handler", "ProgressHandler"),
		progressSvc: progressSvc,
	}
}

type progressRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
}

// POST /api/course-progress
func (h *ProgressHandler) ComputeProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.progressSvc.ComputeProgress(c.Request.Context(), req.CourseID, req.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type progressBatchRequest struct {
	CourseIDs []string `json:"course_ids" binding:"required"`
	UserID    string   `json:"user_id" binding:"required"`
}

// POST /api/course-progress/batch
func (h *ProgressHandler) ComputeProgressMany(c *gin.Context) {
	var req progressBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	results, err := h.progressSvc.ComputeProgressMany(c.Request.Context(), req.CourseIDs, req.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": results})
}
