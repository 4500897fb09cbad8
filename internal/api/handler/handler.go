package handler

import "boiler-ai/backend/internal/service"

// Handler aggregates every module's handler
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Schedule   *ScheduleHandler
	Transcript *TranscriptHandler
	GPA        *GPAHandler
	Advisor    *AdvisorHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// NewHandler builds the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Course:     NewCourseHandler(svc.Course),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Transcript: NewTranscriptHandler(svc.Transcript),
		GPA:        NewGPAHandler(svc.GPA),
		Advisor:    NewAdvisorHandler(svc.Advisor),
		Export:     NewExportHandler(svc.Export),
		Health:     NewHealthHandler(),
	}
}
