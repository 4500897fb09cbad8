package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	pkgerrors "boiler-ai/backend/pkg/errors"
)

var (
	ErrScheduleNotFound        = errors.New("schedule not found")
	ErrScheduleConflict        = errors.New("schedule conflicts detected")
	ErrCourseAlreadyInSchedule = errors.New("course already in schedule")
	ErrUnknownCourses          = errors.New("one or more courses do not exist")
	ErrCourseNotInSchedule     = errors.New("course not found in schedule")
)

// ConflictError carries the conflicting pairs; errors.Is matches ErrScheduleConflict.
type ConflictError struct {
	Conflicts []dto.ScheduleConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d pair(s)", ErrScheduleConflict.Error(), len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool { return target == ErrScheduleConflict }

// ScheduleService term planning
type ScheduleService interface {
	Create(ctx context.Context, userID string, req *dto.CreateScheduleRequest) (*dto.CreateScheduleResponse, error)
	ListByUser(ctx context.Context, caller Caller, userID string) (*dto.ScheduleListResponse, error)
	Get(ctx context.Context, caller Caller, id string) (*dto.ScheduleDetailResponse, error)
	AddCourse(ctx context.Context, caller Caller, scheduleID string, req *dto.AddScheduleCourseRequest) (*dto.ScheduleCourseResponse, error)
	RemoveCourse(ctx context.Context, caller Caller, scheduleID, courseID string) (*dto.ScheduleCourseResponse, error)
	Delete(ctx context.Context, caller Caller, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Create
// ═══════════════════════════════════════════════════════════
//
//  1. load the requested courses
//  2. reject identical schedule_info pairs
//  3. reject IDs that matched no course
//  4. insert schedule and join rows in one transaction

func (s *scheduleService) Create(ctx context.Context, userID string, req *dto.CreateScheduleRequest) (*dto.CreateScheduleResponse, error) {
	ids := dedupe(req.Courses)

	courses, err := s.repo.Course.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load courses", zap.Strings("course_ids", ids), zap.Error(err))
		return nil, err
	}

	if conflicts := FindConflicts(courses); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}
	if len(courses) != len(ids) {
		return nil, ErrUnknownCourses
	}

	semester, _ := dto.NormalizeTerm(req.Semester)
	schedule := &model.Schedule{
		UserID:   userID,
		Semester: semester,
		Year:     req.Year,
	}
	if err := s.repo.Schedule.CreateWithCourses(ctx, schedule, ids); err != nil {
		// a course was deleted between the lookup and the insert
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrUnknownCourses
		}
		s.logger.Error("failed to create schedule", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("schedule created",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("user_id", userID),
		zap.Int("course_count", len(ids)),
	)

	return &dto.CreateScheduleResponse{
		ScheduleID:  schedule.ScheduleID,
		Semester:    schedule.Semester,
		Year:        schedule.Year,
		CourseCount: len(ids),
	}, nil
}

func (s *scheduleService) ListByUser(ctx context.Context, caller Caller, userID string) (*dto.ScheduleListResponse, error) {
	if !caller.CanAccess(userID) {
		return nil, ErrForbidden
	}

	rows, err := s.repo.Schedule.ListSummariesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list schedules", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.ScheduleSummaryResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ScheduleSummaryResponse{
			ScheduleResponse: toScheduleResponse(&rows[i].Schedule),
			CourseCount:      rows[i].CourseCount,
			TotalCredits:     rows[i].TotalCredits,
		})
	}
	return &dto.ScheduleListResponse{Schedules: items, Count: len(items)}, nil
}

func (s *scheduleService) Get(ctx context.Context, caller Caller, id string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, id)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Schedule.ListCourses(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("failed to list schedule courses", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	items := toCourseResponses(courses)
	return &dto.ScheduleDetailResponse{
		Schedule:    toScheduleResponse(schedule),
		Courses:     items,
		CourseCount: len(items),
	}, nil
}

// AddCourse applies the same conflict rule as Create against the courses already planned.
func (s *scheduleService) AddCourse(ctx context.Context, caller Caller, scheduleID string, req *dto.AddScheduleCourseRequest) (*dto.ScheduleCourseResponse, error) {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, scheduleID)
	if err != nil {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to load course", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Schedule.HasCourse(ctx, schedule.ScheduleID, course.CourseID)
	if err != nil {
		s.logger.Error("failed to check schedule course", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrCourseAlreadyInSchedule
	}

	current, err := s.repo.Schedule.ListCourses(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("failed to list schedule courses", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	if conflicts := conflictsWith(*course, current); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if err := s.repo.Schedule.AddCourse(ctx, schedule.ScheduleID, course.CourseID); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrCourseAlreadyInSchedule
		}
		s.logger.Error("failed to add course to schedule", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	return &dto.ScheduleCourseResponse{ScheduleID: schedule.ScheduleID, CourseID: course.CourseID}, nil
}

func (s *scheduleService) RemoveCourse(ctx context.Context, caller Caller, scheduleID, courseID string) (*dto.ScheduleCourseResponse, error) {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, scheduleID)
	if err != nil {
		return nil, err
	}
	if !validID(courseID) {
		return nil, ErrCourseNotInSchedule
	}

	if err := s.repo.Schedule.RemoveCourse(ctx, schedule.ScheduleID, courseID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrCourseNotInSchedule
		}
		s.logger.Error("failed to remove course from schedule", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	return &dto.ScheduleCourseResponse{ScheduleID: schedule.ScheduleID, CourseID: courseID}, nil
}

func (s *scheduleService) Delete(ctx context.Context, caller Caller, id string) error {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, schedule.ScheduleID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrScheduleNotFound
		}
		s.logger.Error("failed to delete schedule", zap.String("schedule_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// loadOwnedSchedule is shared with the export service.
func loadOwnedSchedule(ctx context.Context, repo *repository.Repository, logger *zap.Logger, caller Caller, id string) (*model.Schedule, error) {
	if !validID(id) {
		return nil, ErrScheduleNotFound
	}
	schedule, err := repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		logger.Error("failed to load schedule", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}
	if !caller.CanAccess(schedule.UserID) {
		return nil, ErrForbidden
	}
	return schedule, nil
}

// conflictsWith reports the pairs a new course would form with the planned ones
func conflictsWith(course model.Course, planned []model.Course) []dto.ScheduleConflict {
	all := append([]model.Course{course}, planned...)
	var out []dto.ScheduleConflict
	for _, c := range FindConflicts(all) {
		if c.Course1 == course.CourseCode {
			out = append(out, c)
		}
	}
	return out
}

func toScheduleResponse(s *model.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:        s.ScheduleID,
		UserID:    s.UserID,
		Semester:  s.Semester,
		Year:      s.Year,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

// dedupe keeps first occurrences in order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
