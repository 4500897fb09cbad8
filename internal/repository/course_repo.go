package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
)

// CourseFilter catalog filters; empty fields are ignored
type CourseFilter struct {
	Major    string
	Semester string
	Search   string
}

// CourseRepository course catalog data access
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Course, error)
	GetByCodes(ctx context.Context, codes []string) ([]model.Course, error)
	ListMajors(ctx context.Context) ([]string, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates a CourseRepository
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

// likeEscaper makes LIKE metacharacters match literally (backslash is the default escape)
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *courseRepo) List(ctx context.Context, filter CourseFilter) ([]model.Course, error) {
	var courses []model.Course
	db := r.db.WithContext(ctx).Model(&model.Course{})

	if filter.Major != "" {
		db = db.Where("major = ?", filter.Major)
	}
	if filter.Semester != "" {
		db = db.Where("? = ANY(semester_offered)", filter.Semester)
	}
	if filter.Search != "" {
		like := "%" + likeEscaper.Replace(filter.Search) + "%"
		db = db.Where("(course_code ILIKE ? OR title ILIKE ? OR description ILIKE ?)", like, like, like)
	}

	if err := db.Order("course_code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", ids).
		Order("course_code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) GetByCodes(ctx context.Context, codes []string) ([]model.Course, error) {
	var courses []model.Course
	if len(codes) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_code IN ?", codes).
		Order("course_code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListMajors(ctx context.Context) ([]string, error) {
	var majors []string
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Distinct("major").
		Order("major ASC").
		Pluck("major", &majors).Error
	return majors, err
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
