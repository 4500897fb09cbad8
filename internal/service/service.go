package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"boiler-ai/backend/config"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	"boiler-ai/backend/pkg/jwt"
	"boiler-ai/backend/pkg/llm"
)

// ErrForbidden caller may not touch another user's data
var ErrForbidden = errors.New("access denied")

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID string
	Role   string
}

// CanAccess reports whether the caller may read or change data owned by ownerID.
func (c Caller) CanAccess(ownerID string) bool {
	return c.Role == model.RoleAdmin || c.UserID == ownerID
}

// TokenStore revokes JWT IDs. Backed by Redis; nil disables revocation.
type TokenStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// ChatCompleter sends a conversation to the chat-completion API.
type ChatCompleter interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
}

// Service aggregates every service
type Service struct {
	Auth       AuthService
	Course     CourseService
	Schedule   ScheduleService
	Transcript TranscriptService
	GPA        GPAService
	Advisor    AdvisorService
	Export     ExportService
}

// NewService wires the services over the repositories
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenStore,
	completer ChatCompleter,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, tokens, logger),
		Course:     NewCourseService(repo, logger),
		Schedule:   NewScheduleService(repo, logger),
		Transcript: NewTranscriptService(repo, logger),
		GPA:        NewGPAService(repo, logger),
		Advisor:    NewAdvisorService(&cfg.LLM, repo, completer, logger),
		Export:     NewExportService(&cfg.Calendar, repo, logger),
	}
}

// validID rejects path IDs that are not UUIDs before they reach PostgreSQL
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
