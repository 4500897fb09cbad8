package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// AdvisorHandler AI advisor endpoints
type AdvisorHandler struct {
	advisorSvc service.AdvisorService
}

// NewAdvisorHandler creates an AdvisorHandler
func NewAdvisorHandler(advisorSvc service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorSvc: advisorSvc}
}

// Chat
// POST /api/v1/ai/chat
func (h *AdvisorHandler) Chat(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.advisorSvc.Chat(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAdvisorError(c, err)
		return
	}

	response.OK(c, result)
}

// Recommendations
// POST /api/v1/ai/recommendations
func (h *AdvisorHandler) Recommendations(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.advisorSvc.Recommend(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAdvisorError(c, err)
		return
	}

	response.OK(c, result)
}

// ChatHistory
// GET /api/v1/ai/chat-history/:userId?limit=20
func (h *AdvisorHandler) ChatHistory(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.LimitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.advisorSvc.History(c.Request.Context(), caller, c.Param("userId"), req.GetLimit())
	if err != nil {
		h.handleAdvisorError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AdvisorHandler) handleAdvisorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11003, "User not found")
	case errors.Is(err, service.ErrAINotConfigured):
		response.Error(c, http.StatusServiceUnavailable, 16002, "AI service is not configured")
	case errors.Is(err, service.ErrAIUpstream):
		response.Error(c, http.StatusBadGateway, 16003, "Failed to get AI response")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, response.CodeForbidden, "Access denied")
	default:
		response.InternalError(c)
	}
}
