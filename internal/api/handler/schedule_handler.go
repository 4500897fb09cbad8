package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// ScheduleHandler term schedule endpoints
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// CreateSchedule for the caller
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, "Schedule created successfully", result)
}

// ListUserSchedules
// GET /api/v1/schedules/user/:userId
func (h *ScheduleHandler) ListUserSchedules(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ListByUser(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetSchedule schedule with its courses
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// AddCourse
// POST /api/v1/schedules/:id/courses
func (h *ScheduleHandler) AddCourse(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AddScheduleCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.scheduleSvc.AddCourse(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKWithMessage(c, "Course added to schedule", result)
}

// RemoveCourse
// DELETE /api/v1/schedules/:id/courses/:courseId
func (h *ScheduleHandler) RemoveCourse(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.RemoveCourse(c.Request.Context(), caller, c.Param("id"), c.Param("courseId"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKWithMessage(c, "Course removed from schedule", result)
}

// DeleteSchedule
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKWithMessage(c, "Schedule deleted", nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithData(c, http.StatusBadRequest, 13002, "Schedule conflicts detected",
			conflictDetails(conflict.Conflicts), dto.ConflictsResponse{Conflicts: conflict.Conflicts})
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13001, "Schedule not found")
	case errors.Is(err, service.ErrCourseAlreadyInSchedule):
		response.BadRequest(c, 13003, "Course already in schedule")
	case errors.Is(err, service.ErrUnknownCourses):
		response.BadRequest(c, 13004, "One or more courses do not exist")
	case errors.Is(err, service.ErrCourseNotInSchedule):
		response.NotFound(c, 13005, "Course not found in schedule")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "Course not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, response.CodeForbidden, "Access denied")
	default:
		response.InternalError(c)
	}
}

func conflictDetails(conflicts []dto.ScheduleConflict) string {
	parts := make([]string, 0, len(conflicts))
	for _, cf := range conflicts {
		parts = append(parts, cf.Course1+" and "+cf.Course2+": "+cf.Conflict)
	}
	return strings.Join(parts, "; ")
}
