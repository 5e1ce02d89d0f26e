package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivedu/courselink-backend/internal/http/response"
	"github.com/nivedu/courselink-backend/internal/platform/logger"
	"github.com/nivedu/courselink-backend/internal/services"
)

type CourseClassHandler struct {
	log       *logger.Logger
	assignSvc services.AssignmentService
	readSvc   services.CourseClassesService
}

func NewCourseClassHandler(
	log *logger.Logger,
	assignSvc services.AssignmentService,
	readSvc services.CourseClassesService,
) *CourseClassHandler {
	return &CourseClassHandler{
		log:       log.With("handler", "CourseClassHandler"),
		assignSvc: assignSvc,
		readSvc:   readSvc,
	}
}

type assignRequest struct {
	ClassID  string `json:"class_id" binding:"required"`
	Priority *int   `json:"priority"`
}

// POST /api/courses/:courseId/classes
func (h *CourseClassHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	link, err := h.assignSvc.Assign(c.Request.Context(), c.Param("courseId"), req.ClassID, req.Priority)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"link": link})
}

// GET /api/courses/:courseId/classes
func (h *CourseClassHandler) ListClasses(c *gin.Context) {
	view, err := h.readSvc.ClassesForCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/courses/:courseId/available-classes
func (h *CourseClassHandler) ListAvailableClasses(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	view, err := h.readSvc.AvailableClasses(c.Request.Context(), c.Param("courseId"), includeInactive, c.Query("sort"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

type priorityRequest struct {
	Priority int `json:"priority" binding:"required"`
}

// PUT /api/courses/:courseId/classes/:classId/priority
func (h *CourseClassHandler) UpdatePriority(c *gin.Context) {
	var req priorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	link, err := h.assignSvc.UpdatePriority(c.Request.Context(), c.Param("courseId"), c.Param("classId"), req.Priority)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"link": link})
}

type reorderRequest struct {
	Classes []services.ReorderEntry `json:"classes" binding:"required"`
}

// PUT /api/courses/:courseId/classes/reorder
func (h *CourseClassHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	view, err := h.assignSvc.Reorder(c.Request.Context(), c.Param("courseId"), req.Classes)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/courses/:courseId/classes/:classId
func (h *CourseClassHandler) Unassign(c *gin.Context) {
	link, err := h.assignSvc.Unassign(c.Request.Context(), c.Param("courseId"), c.Param("classId"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"removed": link})
}

// PATCH /api/courses/:courseId/classes/:classId/toggle
func (h *CourseClassHandler) ToggleActive(c *gin.Context) {
	link, err := h.assignSvc.ToggleActive(c.Request.Context(), c.Param("courseId"), c.Param("classId"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"link": link})
}
