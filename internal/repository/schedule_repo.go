package repository

import (
	"context"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
)

// ScheduleRepository schedule and schedule_courses data access
type ScheduleRepository interface {
	CreateWithCourses(ctx context.Context, schedule *model.Schedule, courseIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	ListSummariesByUser(ctx context.Context, userID string) ([]model.ScheduleSummary, error)
	ListCourses(ctx context.Context, scheduleID string) ([]model.Course, error)
	HasCourse(ctx context.Context, scheduleID, courseID string) (bool, error)
	AddCourse(ctx context.Context, scheduleID, courseID string) error
	RemoveCourse(ctx context.Context, scheduleID, courseID string) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates a ScheduleRepository
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

// CreateWithCourses inserts the schedule and its course rows in one transaction.
func (r *scheduleRepo) CreateWithCourses(ctx context.Context, schedule *model.Schedule, courseIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		if len(courseIDs) == 0 {
			return nil
		}
		rows := make([]model.ScheduleCourse, 0, len(courseIDs))
		for _, id := range courseIDs {
			rows = append(rows, model.ScheduleCourse{ScheduleID: schedule.ScheduleID, CourseID: id})
		}
		return tx.Create(&rows).Error
	})
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListSummariesByUser(ctx context.Context, userID string) ([]model.ScheduleSummary, error) {
	var rows []model.ScheduleSummary
	err := r.db.WithContext(ctx).
		Table("schedules AS s").
		Select("s.*, COUNT(sc.course_id) AS course_count, COALESCE(SUM(c.credits), 0) AS total_credits").
		Joins("LEFT JOIN schedule_courses sc ON sc.schedule_id = s.schedule_id").
		Joins("LEFT JOIN courses c ON c.course_id = sc.course_id").
		Where("s.user_id = ?", userID).
		Group("s.schedule_id").
		Order("s.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scheduleRepo) ListCourses(ctx context.Context, scheduleID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN schedule_courses sc ON sc.course_id = courses.course_id").
		Where("sc.schedule_id = ?", scheduleID).
		Order("courses.course_code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *scheduleRepo) HasCourse(ctx context.Context, scheduleID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleCourse{}).
		Where("schedule_id = ? AND course_id = ?", scheduleID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *scheduleRepo) AddCourse(ctx context.Context, scheduleID, courseID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.ScheduleCourse{ScheduleID: scheduleID, CourseID: courseID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return touchSchedule(tx, scheduleID)
	})
}

// RemoveCourse returns gorm.ErrRecordNotFound when the pair does not exist.
func (r *scheduleRepo) RemoveCourse(ctx context.Context, scheduleID, courseID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("schedule_id = ? AND course_id = ?", scheduleID, courseID).
			Delete(&model.ScheduleCourse{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return touchSchedule(tx, scheduleID)
	})
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// touchSchedule bumps updated_at after a course change
func touchSchedule(tx *gorm.DB, scheduleID string) error {
	return tx.Model(&model.Schedule{}).
		Where("schedule_id = ?", scheduleID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
