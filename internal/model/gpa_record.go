package model

import "time"

// GPARecord maps to gpa_records: one saved term GPA with the grades it was computed from.
type GPARecord struct {
	RecordID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	UserID       string    `gorm:"type:uuid;not null;index"                      json:"user_id"`
	Semester     string    `gorm:"type:varchar(20);not null"                     json:"semester"`
	Year         int       `gorm:"not null"                                      json:"year"`
	GPA          float64   `gorm:"column:gpa;type:numeric(3,2);not null"         json:"gpa"`
	TotalCredits float64   `gorm:"type:numeric(5,1);not null"                    json:"total_credits"`
	GradesData   JSON      `gorm:"type:jsonb;not null"                           json:"grades_data"`
	RecordedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime" json:"recorded_at"`
}

// TableName overrides the table name
func (GPARecord) TableName() string { return "gpa_records" }
