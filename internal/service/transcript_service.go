package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	pkgerrors "boiler-ai/backend/pkg/errors"
)

var (
	ErrTranscriptFileRequired = errors.New("no file uploaded")
	ErrTranscriptFileType     = errors.New("only PDF and image files are allowed")
	ErrTranscriptTooLarge     = errors.New("file exceeds 5MB limit")
	ErrTranscriptNotFound     = errors.New("transcript not found")
	ErrAnalysisNotFound       = errors.New("analysis not found")
)

// MaxTranscriptSize upload limit in bytes
const MaxTranscriptSize = 5 << 20

const (
	standingGood      = "Good Standing"
	standingProbation = "Academic Probation"
	minGoodStanding   = 2.0
)

var allowedTranscriptTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// TranscriptService upload metadata and academic analysis
type TranscriptService interface {
	Upload(ctx context.Context, userID, filename string, size int64, content io.Reader) (*dto.UploadTranscriptResponse, error)
	ListByUser(ctx context.Context, caller Caller, userID string) (*dto.TranscriptListResponse, error)
	Analyze(ctx context.Context, caller Caller, transcriptID string) (*dto.AnalysisResponse, error)
	GetAnalysis(ctx context.Context, caller Caller, transcriptID string) (*dto.AnalysisResponse, error)
}

type transcriptService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTranscriptService creates a TranscriptService
func NewTranscriptService(repo *repository.Repository, logger *zap.Logger) TranscriptService {
	return &transcriptService{repo: repo, logger: logger}
}

// Upload validates the file by size and sniffed content type and records its metadata.
// The content itself is not stored.
func (s *transcriptService) Upload(ctx context.Context, userID, filename string, size int64, content io.Reader) (*dto.UploadTranscriptResponse, error) {
	if content == nil {
		return nil, ErrTranscriptFileRequired
	}
	if size > MaxTranscriptSize {
		return nil, ErrTranscriptTooLarge
	}

	mtype, err := mimetype.DetectReader(content)
	if err != nil {
		s.logger.Warn("failed to sniff upload", zap.String("filename", filename), zap.Error(err))
		return nil, ErrTranscriptFileType
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTranscriptTypes...) {
		return nil, ErrTranscriptFileType
	}

	transcript := &model.Transcript{
		UserID:   userID,
		Filename: filepath.Base(filename),
		FileSize: size,
		MimeType: mtype.String(),
	}
	if err := s.repo.Transcript.Create(ctx, transcript); err != nil {
		s.logger.Error("failed to save transcript", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.UploadTranscriptResponse{
		TranscriptID: transcript.TranscriptID,
		Filename:     transcript.Filename,
	}, nil
}

func (s *transcriptService) ListByUser(ctx context.Context, caller Caller, userID string) (*dto.TranscriptListResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, ErrForbidden
	}

	transcripts, err := s.repo.Transcript.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list transcripts", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.TranscriptResponse, 0, len(transcripts))
	for _, t := range transcripts {
		items = append(items, dto.TranscriptResponse{
			ID:         t.TranscriptID,
			UserID:     t.UserID,
			Filename:   t.Filename,
			FileSize:   t.FileSize,
			MimeType:   t.MimeType,
			UploadedAt: formatTime(t.UploadedAt),
		})
	}
	return &dto.TranscriptListResponse{Transcripts: items, Count: len(items)}, nil
}

// ═══════════════════════════════════════════════════════════
// Analyze
// ═══════════════════════════════════════════════════════════
//
// The analysis is derived from the owner's saved GPA records and the catalog of their
// major; the uploaded file is never parsed.

func (s *transcriptService) Analyze(ctx context.Context, caller Caller, transcriptID string) (*dto.AnalysisResponse, error) {
	transcript, err := s.loadOwned(ctx, caller, transcriptID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, transcript.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to load user", zap.String("user_id", transcript.UserID), zap.Error(err))
		return nil, err
	}

	records, err := s.repo.GPA.ListByUser(ctx, user.UserID)
	if err != nil {
		s.logger.Error("failed to list gpa records", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	var catalog []model.Course
	if user.Major != nil && *user.Major != "" {
		catalog, err = s.repo.Course.List(ctx, repository.CourseFilter{Major: *user.Major})
		if err != nil {
			s.logger.Error("failed to list major courses", zap.String("major", *user.Major), zap.Error(err))
			return nil, err
		}
	}

	analysis := BuildAnalysis(user, records, catalog)

	data, err := model.NewJSON(analysis)
	if err != nil {
		return nil, err
	}
	row := &model.TranscriptAnalysis{
		TranscriptID: transcript.TranscriptID,
		AnalysisData: data,
	}
	if err := s.repo.Transcript.CreateAnalysis(ctx, row); err != nil {
		s.logger.Error("failed to save analysis", zap.String("transcript_id", transcriptID), zap.Error(err))
		return nil, err
	}

	return &dto.AnalysisResponse{
		TranscriptID: transcript.TranscriptID,
		Analysis:     analysis,
		AnalyzedAt:   formatTime(row.AnalyzedAt),
	}, nil
}

func (s *transcriptService) GetAnalysis(ctx context.Context, caller Caller, transcriptID string) (*dto.AnalysisResponse, error) {
	transcript, err := s.loadOwned(ctx, caller, transcriptID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Transcript.GetLatestAnalysis(ctx, transcript.TranscriptID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrAnalysisNotFound
		}
		s.logger.Error("failed to load analysis", zap.String("transcript_id", transcriptID), zap.Error(err))
		return nil, err
	}

	var analysis dto.TranscriptAnalysis
	if err := row.AnalysisData.Decode(&analysis); err != nil {
		s.logger.Error("unreadable analysis_data", zap.String("analysis_id", row.AnalysisID), zap.Error(err))
		return nil, err
	}

	return &dto.AnalysisResponse{
		TranscriptID: transcript.TranscriptID,
		Analysis:     analysis,
		AnalyzedAt:   formatTime(row.AnalyzedAt),
	}, nil
}

// BuildAnalysis summarises a student's saved records against their major's catalog.
func BuildAnalysis(user *model.User, records []model.GPARecord, catalog []model.Course) dto.TranscriptAnalysis {
	gpa, credits := CumulativeGPA(records)

	completed := map[string]bool{}
	for _, r := range records {
		for _, g := range decodeGrades(r.GradesData) {
			course := strings.ToUpper(strings.TrimSpace(g.Course))
			if course != "" && isPassing(g.Grade) {
				completed[course] = true
			}
		}
	}
	completedList := make([]string, 0, len(completed))
	for c := range completed {
		completedList = append(completedList, c)
	}
	sort.Strings(completedList)

	remaining := []string{}
	for _, c := range catalog {
		if !completed[strings.ToUpper(c.CourseCode)] {
			remaining = append(remaining, c.CourseCode)
		}
	}
	sort.Strings(remaining)

	var graduation *string
	if user.GraduationYear != nil {
		g := fmt.Sprintf("May %d", *user.GraduationYear)
		graduation = &g
	}

	standing := standingGood
	if credits > 0 && gpa < minGoodStanding {
		standing = standingProbation
	}

	return dto.TranscriptAnalysis{
		TotalCredits:            credits,
		GPA:                     roundGPA(gpa),
		CompletedCourses:        completedList,
		RemainingRequirements:   remaining,
		EstimatedGraduationDate: graduation,
		AcademicStanding:        standing,
	}
}

func (s *transcriptService) loadOwned(ctx context.Context, caller Caller, id string) (*model.Transcript, error) {
	if !validID(id) {
		return nil, ErrTranscriptNotFound
	}
	transcript, err := s.repo.Transcript.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrTranscriptNotFound
		}
		s.logger.Error("failed to load transcript", zap.String("transcript_id", id), zap.Error(err))
		return nil, err
	}
	if !caller.CanAccess(transcript.UserID) {
		return nil, ErrForbidden
	}
	return transcript, nil
}
