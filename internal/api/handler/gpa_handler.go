package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// GPAHandler GPA calculator and history endpoints
type GPAHandler struct {
	gpaSvc service.GPAService
}

// NewGPAHandler creates a GPAHandler
func NewGPAHandler(gpaSvc service.GPAService) *GPAHandler {
	return &GPAHandler{gpaSvc: gpaSvc}
}

// Calculate
// POST /api/v1/gpa/calculate
func (h *GPAHandler) Calculate(c *gin.Context) {
	var req dto.CalculateGPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.gpaSvc.Calculate(c.Request.Context(), &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}

	response.OK(c, result)
}

// Save stores a term GPA for the caller
// POST /api/v1/gpa/save
func (h *GPAHandler) Save(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveGPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.gpaSvc.Save(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}

	response.Created(c, "GPA record saved successfully", result)
}

// History
// GET /api/v1/gpa/history/:userId
func (h *GPAHandler) History(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.gpaSvc.History(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		h.handleGPAError(c, err)
		return
	}

	response.OK(c, result)
}

// GetRecord
// GET /api/v1/gpa/records/:id
func (h *GPAHandler) GetRecord(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	record, err := h.gpaSvc.GetRecord(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleGPAError(c, err)
		return
	}

	response.OK(c, gin.H{"record": record})
}

// Predict
// POST /api/v1/gpa/predict
func (h *GPAHandler) Predict(c *gin.Context) {
	var req dto.PredictGPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.gpaSvc.Predict(c.Request.Context(), &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *GPAHandler) handleGPAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradesRequired):
		response.BadRequest(c, 15001, "Grades array is required")
	case errors.Is(err, service.ErrGPARecordNotFound):
		response.NotFound(c, 15002, "GPA record not found")
	case errors.Is(err, service.ErrPredictInputsRequired):
		response.BadRequest(c, 15003, "current_gpa, current_credits and new_grades are required")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, response.CodeForbidden, "Access denied")
	default:
		response.InternalError(c)
	}
}
