package dto

// ── schedule requests ──

// CreateScheduleRequest plans a term for the caller
type CreateScheduleRequest struct {
	Semester string   `json:"semester" binding:"required,semester_term"`
	Year     int      `json:"year"     binding:"required,min=2000,max=2100"`
	Courses  []string `json:"courses"  binding:"required,max=20,dive,uuid"`
}

// AddScheduleCourseRequest adds one course to a schedule
type AddScheduleCourseRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
}

// ── schedule responses ──

// ScheduleConflict two courses that share the same schedule_info
type ScheduleConflict struct {
	Course1  string `json:"course1"`
	Course2  string `json:"course2"`
	Conflict string `json:"conflict"`
}

// ConflictsResponse payload of a rejected schedule
type ConflictsResponse struct {
	Conflicts []ScheduleConflict `json:"conflicts"`
}

// CreateScheduleResponse result of a created schedule
type CreateScheduleResponse struct {
	ScheduleID  string `json:"schedule_id"`
	Semester    string `json:"semester"`
	Year        int    `json:"year"`
	CourseCount int    `json:"course_count"`
}

// ScheduleResponse schedule row
type ScheduleResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Semester  string `json:"semester"`
	Year      int    `json:"year"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ScheduleSummaryResponse schedule row with aggregates
type ScheduleSummaryResponse struct {
	ScheduleResponse
	CourseCount  int64   `json:"course_count"`
	TotalCredits float64 `json:"total_credits"`
}

// ScheduleListResponse a user's schedules
type ScheduleListResponse struct {
	Schedules []ScheduleSummaryResponse `json:"schedules"`
	Count     int                       `json:"count"`
}

// ScheduleDetailResponse schedule with its courses
type ScheduleDetailResponse struct {
	Schedule    ScheduleResponse `json:"schedule"`
	Courses     []CourseResponse `json:"courses"`
	CourseCount int              `json:"course_count"`
}

// ScheduleCourseResponse identifies a schedule/course pair after a change
type ScheduleCourseResponse struct {
	ScheduleID string `json:"schedule_id"`
	CourseID   string `json:"course_id"`
}
