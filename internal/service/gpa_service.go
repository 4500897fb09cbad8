package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	pkgerrors "boiler-ai/backend/pkg/errors"
)

var (
	ErrGradesRequired        = errors.New("grades array is required")
	ErrGPARecordNotFound     = errors.New("gpa record not found")
	ErrPredictInputsRequired = errors.New("current_gpa, current_credits and new_grades are required")
)

// GPAService GPA calculation and history
type GPAService interface {
	Calculate(ctx context.Context, req *dto.CalculateGPARequest) (*dto.CalculateGPAResponse, error)
	Save(ctx context.Context, userID string, req *dto.SaveGPARequest) (*dto.SaveGPAResponse, error)
	History(ctx context.Context, caller Caller, userID string) (*dto.GPAHistoryResponse, error)
	GetRecord(ctx context.Context, caller Caller, id string) (*dto.GPARecordResponse, error)
	Predict(ctx context.Context, req *dto.PredictGPARequest) (*dto.PredictGPAResponse, error)
}

type gpaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGPAService creates a GPAService
func NewGPAService(repo *repository.Repository, logger *zap.Logger) GPAService {
	return &gpaService{repo: repo, logger: logger}
}

func (s *gpaService) Calculate(_ context.Context, req *dto.CalculateGPARequest) (*dto.CalculateGPAResponse, error) {
	if req.Grades == nil {
		return nil, ErrGradesRequired
	}

	gpa, totalCredits := CalculateGPA(req.Grades)

	breakdown := make([]dto.GradeBreakdown, 0, len(req.Grades))
	for _, g := range req.Grades {
		breakdown = append(breakdown, dto.GradeBreakdown{
			Course:  g.Course,
			Grade:   strings.ToUpper(strings.TrimSpace(g.Grade)),
			Credits: g.Credits,
			Points:  GradePoints(g.Grade) * g.Credits,
		})
	}

	return &dto.CalculateGPAResponse{
		GPA:          FormatGPA(gpa),
		TotalCredits: totalCredits,
		GradeCount:   len(req.Grades),
		Breakdown:    breakdown,
	}, nil
}

// Save stores a term record. GPA and credits default to values computed from the grades.
func (s *gpaService) Save(ctx context.Context, userID string, req *dto.SaveGPARequest) (*dto.SaveGPAResponse, error) {
	if req.GPA == nil && len(req.Grades) == 0 {
		return nil, ErrGradesRequired
	}

	gpa, credits := CalculateGPA(req.Grades)
	if req.GPA != nil {
		gpa = *req.GPA
	}
	if req.TotalCredits != nil {
		credits = *req.TotalCredits
	}

	grades := req.Grades
	if grades == nil {
		grades = []dto.GradeEntry{}
	}
	data, err := model.NewJSON(grades)
	if err != nil {
		return nil, err
	}

	semester, _ := dto.NormalizeTerm(req.Semester)
	record := &model.GPARecord{
		UserID:       userID,
		Semester:     semester,
		Year:         req.Year,
		GPA:          roundGPA(gpa),
		TotalCredits: credits,
		GradesData:   data,
	}
	if err := s.repo.GPA.Create(ctx, record); err != nil {
		s.logger.Error("failed to save gpa record", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.SaveGPAResponse{
		RecordID: record.RecordID,
		GPA:      record.GPA,
		Semester: record.Semester,
		Year:     record.Year,
	}, nil
}

func (s *gpaService) History(ctx context.Context, caller Caller, userID string) (*dto.GPAHistoryResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, ErrForbidden
	}

	records, err := s.repo.GPA.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list gpa records", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.GPARecordResponse, 0, len(records))
	for i := range records {
		items = append(items, s.toRecordResponse(&records[i]))
	}
	cumulative, credits := CumulativeGPA(records)

	return &dto.GPAHistoryResponse{
		Records:       items,
		Count:         len(items),
		CumulativeGPA: FormatGPA(cumulative),
		TotalCredits:  credits,
	}, nil
}

func (s *gpaService) GetRecord(ctx context.Context, caller Caller, id string) (*dto.GPARecordResponse, error) {
	if !validID(id) {
		return nil, ErrGPARecordNotFound
	}
	record, err := s.repo.GPA.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrGPARecordNotFound
		}
		s.logger.Error("failed to load gpa record", zap.String("record_id", id), zap.Error(err))
		return nil, err
	}
	if !caller.CanAccess(record.UserID) {
		return nil, ErrForbidden
	}

	resp := s.toRecordResponse(record)
	return &resp, nil
}

func (s *gpaService) Predict(_ context.Context, req *dto.PredictGPARequest) (*dto.PredictGPAResponse, error) {
	if req.CurrentGPA == nil || req.CurrentCredits == nil || req.NewGrades == nil {
		return nil, ErrPredictInputsRequired
	}

	predicted := PredictGPA(*req.CurrentGPA, *req.CurrentCredits, req.NewGrades)
	// credits after the term, not just the term's own
	totalCredits := *req.CurrentCredits
	for _, g := range req.NewGrades {
		totalCredits += g.Credits
	}

	return &dto.PredictGPAResponse{
		CurrentGPA:   FormatGPA(*req.CurrentGPA),
		PredictedGPA: FormatGPA(predicted),
		Change:       FormatGPA(predicted - *req.CurrentGPA),
		NewCredits:   totalCredits,
	}, nil
}

// ── helpers ──

func (s *gpaService) toRecordResponse(r *model.GPARecord) dto.GPARecordResponse {
	grades := decodeGrades(r.GradesData)
	if grades == nil {
		s.logger.Warn("unreadable grades_data", zap.String("record_id", r.RecordID))
		grades = []dto.GradeEntry{}
	}
	return dto.GPARecordResponse{
		ID:           r.RecordID,
		UserID:       r.UserID,
		Semester:     r.Semester,
		Year:         r.Year,
		GPA:          r.GPA,
		TotalCredits: r.TotalCredits,
		Grades:       grades,
		RecordedAt:   formatTime(r.RecordedAt),
	}
}

// decodeGrades returns nil when the column cannot be read
func decodeGrades(data model.JSON) []dto.GradeEntry {
	grades := []dto.GradeEntry{}
	if err := data.Decode(&grades); err != nil {
		return nil
	}
	return grades
}
