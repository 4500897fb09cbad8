package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler liveness endpoint
type HealthHandler struct{}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Boiler AI Server is running",
	})
}
