package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// CourseHandler course catalog endpoints
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates a CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses filtered catalog
// GET /api/v1/courses?major=&semester=&search=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// GetCourse
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"course": course})
}

// ListByMajor
// GET /api/v1/courses/major/:major
func (h *CourseHandler) ListByMajor(c *gin.Context) {
	result, err := h.courseSvc.ListByMajor(c.Request.Context(), c.Param("major"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMajors distinct majors in the catalog
// GET /api/v1/courses/majors
func (h *CourseHandler) ListMajors(c *gin.Context) {
	result, err := h.courseSvc.ListMajors(c.Request.Context())
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// GetPrerequisites
// GET /api/v1/courses/:id/prerequisites
func (h *CourseHandler) GetPrerequisites(c *gin.Context) {
	result, err := h.courseSvc.GetPrerequisites(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateCourse admin only
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, "Course created", gin.H{"course": course})
}

// UpdateCourse admin only
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"course": course})
}

// DeleteCourse admin only
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OKWithMessage(c, "Course deleted", nil)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "Course not found")
	case errors.Is(err, service.ErrCourseCodeExists):
		response.Conflict(c, 12002, "Course code already exists")
	case errors.Is(err, service.ErrInvalidScheduleInfo):
		response.BadRequest(c, 12003, "schedule_info must be a JSON object")
	default:
		response.InternalError(c)
	}
}
