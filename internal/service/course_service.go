package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	pkgerrors "boiler-ai/backend/pkg/errors"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseCodeExists    = errors.New("course code already exists")
	ErrInvalidScheduleInfo = errors.New("schedule_info must be a JSON object")
)

// CourseService catalog operations
type CourseService interface {
	List(ctx context.Context, req *dto.CourseListRequest) (*dto.CourseListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListByMajor(ctx context.Context, major string) (*dto.CourseListResponse, error)
	ListMajors(ctx context.Context) (*dto.MajorsResponse, error)
	GetPrerequisites(ctx context.Context, id string) (*dto.PrerequisitesResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates a CourseService
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) (*dto.CourseListResponse, error) {
	filter := repository.CourseFilter{
		Major:  strings.TrimSpace(req.Major),
		Search: strings.TrimSpace(req.Search),
	}
	if req.Semester != "" {
		filter.Semester, _ = dto.NormalizeTerm(req.Semester)
	}

	courses, err := s.repo.Course.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, err
	}
	return toCourseListResponse(courses, ""), nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) ListByMajor(ctx context.Context, major string) (*dto.CourseListResponse, error) {
	courses, err := s.repo.Course.List(ctx, repository.CourseFilter{Major: major})
	if err != nil {
		s.logger.Error("failed to list courses by major", zap.String("major", major), zap.Error(err))
		return nil, err
	}
	return toCourseListResponse(courses, major), nil
}

func (s *courseService) ListMajors(ctx context.Context) (*dto.MajorsResponse, error) {
	majors, err := s.repo.Course.ListMajors(ctx)
	if err != nil {
		s.logger.Error("failed to list majors", zap.Error(err))
		return nil, err
	}
	if majors == nil {
		majors = []string{}
	}
	return &dto.MajorsResponse{Majors: majors}, nil
}

func (s *courseService) GetPrerequisites(ctx context.Context, id string) (*dto.PrerequisitesResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	prereqs, err := s.repo.Course.GetByCodes(ctx, course.Prerequisites)
	if err != nil {
		s.logger.Error("failed to load prerequisites", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}

	items := make([]dto.PrerequisiteResponse, 0, len(prereqs))
	for _, p := range prereqs {
		items = append(items, dto.PrerequisiteResponse{
			ID:         p.CourseID,
			CourseCode: p.CourseCode,
			Title:      p.Title,
			Credits:    p.Credits,
		})
	}
	return &dto.PrerequisitesResponse{Prerequisites: items, Count: len(items)}, nil
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	info, err := scheduleInfoColumn(req.ScheduleInfo)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseCode:      strings.TrimSpace(req.CourseCode),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Credits:         req.Credits,
		Major:           strings.TrimSpace(req.Major),
		Prerequisites:   pq.StringArray(nonNil(req.Prerequisites)),
		SemesterOffered: pq.StringArray(normalizeTerms(req.SemesterOffered)),
		ScheduleInfo:    info,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrCourseCodeExists
		}
		s.logger.Error("failed to create course", zap.String("course_code", course.CourseCode), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Major != nil {
		course.Major = strings.TrimSpace(*req.Major)
	}
	if req.Prerequisites != nil {
		course.Prerequisites = req.Prerequisites
	}
	if req.SemesterOffered != nil {
		course.SemesterOffered = normalizeTerms(req.SemesterOffered)
	}
	if req.ScheduleInfo != nil {
		info, err := scheduleInfoColumn(req.ScheduleInfo)
		if err != nil {
			return nil, err
		}
		course.ScheduleInfo = info
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("failed to update course", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrCourseNotFound
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrCourseNotFound
		}
		s.logger.Error("failed to delete course", zap.String("course_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	if !validID(id) {
		return nil, ErrCourseNotFound
	}
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to load course", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// scheduleInfoColumn accepts a JSON object or null
func scheduleInfoColumn(raw json.RawMessage) (model.JSON, error) {
	j := model.JSON(raw)
	if j.IsNull() {
		return nil, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, ErrInvalidScheduleInfo
	}
	return j, nil
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		if term, ok := dto.NormalizeTerm(t); ok && !seen[term] {
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	var info json.RawMessage
	if !c.ScheduleInfo.IsNull() {
		info = json.RawMessage(c.ScheduleInfo)
	}
	return dto.CourseResponse{
		ID:              c.CourseID,
		CourseCode:      c.CourseCode,
		Title:           c.Title,
		Description:     c.Description,
		Credits:         c.Credits,
		Major:           c.Major,
		Prerequisites:   nonNil(c.Prerequisites),
		SemesterOffered: nonNil(c.SemesterOffered),
		ScheduleInfo:    info,
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, toCourseResponse(&courses[i]))
	}
	return items
}

func toCourseListResponse(courses []model.Course, major string) *dto.CourseListResponse {
	items := toCourseResponses(courses)
	return &dto.CourseListResponse{Courses: items, Count: len(items), Major: major}
}
