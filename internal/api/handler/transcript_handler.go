package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

// transcriptField multipart field carrying the upload
const transcriptField = "transcript"

// TranscriptHandler transcript upload and analysis endpoints
type TranscriptHandler struct {
	transcriptSvc service.TranscriptService
}

// NewTranscriptHandler creates a TranscriptHandler
func NewTranscriptHandler(transcriptSvc service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcriptSvc: transcriptSvc}
}

// Upload stores the metadata of an uploaded transcript
// POST /api/v1/transcripts/upload (multipart, field "transcript")
func (h *TranscriptHandler) Upload(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile(transcriptField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.handleTranscriptError(c, service.ErrTranscriptTooLarge)
			return
		}
		h.handleTranscriptError(c, service.ErrTranscriptFileRequired)
		return
	}

	file, err := fh.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	result, err := h.transcriptSvc.Upload(c.Request.Context(), userID, fh.Filename, fh.Size, file)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OKWithMessage(c, "Transcript uploaded successfully", result)
}

// ListUserTranscripts newest first
// GET /api/v1/transcripts/user/:userId
func (h *TranscriptHandler) ListUserTranscripts(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.transcriptSvc.ListByUser(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OK(c, result)
}

// Analyze builds and stores an analysis
// POST /api/v1/transcripts/:id/analyze
func (h *TranscriptHandler) Analyze(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.transcriptSvc.Analyze(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OKWithMessage(c, "Transcript analyzed", result)
}

// GetAnalysis latest stored analysis
// GET /api/v1/transcripts/:id/analysis
func (h *TranscriptHandler) GetAnalysis(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.transcriptSvc.GetAnalysis(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *TranscriptHandler) handleTranscriptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTranscriptFileRequired):
		response.BadRequest(c, 14001, "No file uploaded")
	case errors.Is(err, service.ErrTranscriptFileType):
		response.BadRequest(c, 14002, "Only PDF and image files are allowed")
	case errors.Is(err, service.ErrTranscriptTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 14003, "File exceeds 5MB limit")
	case errors.Is(err, service.ErrTranscriptNotFound):
		response.NotFound(c, 14004, "Transcript not found")
	case errors.Is(err, service.ErrAnalysisNotFound):
		response.NotFound(c, 14005, "Analysis not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, response.CodeForbidden, "Access denied")
	default:
		response.InternalError(c)
	}
}
