package model

import "time"

// Schedule maps to schedules: one planned term for a student.
type Schedule struct {
	ScheduleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	UserID     string `gorm:"type:uuid;not null;index"                      json:"user_id"`
	Semester   string `gorm:"type:varchar(20);not null"                     json:"semester"`
	Year       int    `gorm:"not null"                                      json:"year"`
	Timestamps
}

// TableName overrides the table name
func (Schedule) TableName() string { return "schedules" }

// ScheduleCourse maps to the schedule_courses junction table.
type ScheduleCourse struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"id"`
	ScheduleID string    `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_course"       json:"schedule_id"`
	CourseID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_course"       json:"course_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                      json:"created_at"`
}

// TableName overrides the table name
func (ScheduleCourse) TableName() string { return "schedule_courses" }

// ScheduleSummary is a schedule row with its aggregated course count and credits.
type ScheduleSummary struct {
	Schedule
	CourseCount  int64   `json:"course_count"`
	TotalCredits float64 `json:"total_credits"`
}
