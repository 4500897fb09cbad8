package dto

import "encoding/json"

// ── course requests ──

// CourseListRequest catalog filters; all optional and combined with AND
type CourseListRequest struct {
	Major    string `form:"major"    binding:"omitempty,max=100"`
	Semester string `form:"semester" binding:"omitempty,semester_term"`
	Search   string `form:"search"   binding:"omitempty,max=100"`
}

// CreateCourseRequest admin catalog entry
type CreateCourseRequest struct {
	CourseCode      string          `json:"course_code"      binding:"required,course_code"`
	Title           string          `json:"title"            binding:"required,max=255"`
	Description     *string         `json:"description"`
	Credits         float64         `json:"credits"          binding:"required,gt=0,lte=12"`
	Major           string          `json:"major"            binding:"required,max=100"`
	Prerequisites   []string        `json:"prerequisites"    binding:"omitempty,dive,course_code"`
	SemesterOffered []string        `json:"semester_offered" binding:"omitempty,dive,semester_term"`
	ScheduleInfo    json.RawMessage `json:"schedule_info"`
}

// UpdateCourseRequest partial catalog update
type UpdateCourseRequest struct {
	Title           *string         `json:"title"            binding:"omitempty,min=1,max=255"`
	Description     *string         `json:"description"`
	Credits         *float64        `json:"credits"          binding:"omitempty,gt=0,lte=12"`
	Major           *string         `json:"major"            binding:"omitempty,min=1,max=100"`
	Prerequisites   []string        `json:"prerequisites"    binding:"omitempty,dive,course_code"`
	SemesterOffered []string        `json:"semester_offered" binding:"omitempty,dive,semester_term"`
	ScheduleInfo    json.RawMessage `json:"schedule_info"`
}

// ── course responses ──

// CourseResponse catalog entry
type CourseResponse struct {
	ID              string          `json:"id"`
	CourseCode      string          `json:"course_code"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	Credits         float64         `json:"credits"`
	Major           string          `json:"major"`
	Prerequisites   []string        `json:"prerequisites"`
	SemesterOffered []string        `json:"semester_offered"`
	ScheduleInfo    json.RawMessage `json:"schedule_info"`
}

// CourseListResponse list payload; Major is set by the by-major endpoint
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Count   int              `json:"count"`
	Major   string           `json:"major,omitempty"`
}

// PrerequisiteResponse short course view
type PrerequisiteResponse struct {
	ID         string  `json:"id"`
	CourseCode string  `json:"course_code"`
	Title      string  `json:"title"`
	Credits    float64 `json:"credits"`
}

// PrerequisitesResponse prerequisites of one course
type PrerequisitesResponse struct {
	Prerequisites []PrerequisiteResponse `json:"prerequisites"`
	Count         int                    `json:"count"`
}

// MajorsResponse distinct majors in the catalog
type MajorsResponse struct {
	Majors []string `json:"majors"`
}
