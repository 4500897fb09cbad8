package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// Context keys set by the JWT middleware
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetUserID reads user_id from the gin context.
// When the JWT middleware did not set it a 401 is written and ok is false; the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(CtxUserID)
	if s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "Access token required")
		return "", false
	}
	return s, true
}

// MustGetCaller reads the authenticated user and role.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	role := c.GetString(CtxRole)
	if role == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "Access token required")
		return service.Caller{}, false
	}
	return service.Caller{UserID: userID, Role: role}, true
}

// tokenInfo returns the JTI and expiry of the presented access token, zero values when absent.
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(CtxTokenJTI), c.GetTime(CtxTokenExp)
}
