package model

import "github.com/lib/pq"

// Course maps to courses
type Course struct {
	CourseID        string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseCode      string         `gorm:"type:varchar(20);not null;uniqueIndex"         json:"course_code"`
	Title           string         `gorm:"type:varchar(255);not null"                    json:"title"`
	Description     *string        `gorm:"type:text"                                     json:"description"`
	Credits         float64        `gorm:"type:numeric(3,1);not null"                    json:"credits"`
	Major           string         `gorm:"type:varchar(100);not null"                    json:"major"`
	Prerequisites   pq.StringArray `gorm:"type:text[];not null;default:'{}'"             json:"prerequisites"`
	SemesterOffered pq.StringArray `gorm:"type:text[];not null;default:'{}'"             json:"semester_offered"`
	ScheduleInfo    JSON           `gorm:"type:jsonb"                                    json:"schedule_info"`
	Timestamps
}

// TableName overrides the table name
func (Course) TableName() string { return "courses" }

// ScheduleInfo is the conventional shape of Course.ScheduleInfo. The column itself is opaque;
// only calendar export reads it through this type.
type ScheduleInfo struct {
	Days     []string `json:"days"`  // "Mon".."Sun"
	Start    string   `json:"start"` // "15:04"
	End      string   `json:"end"`
	Location string   `json:"location,omitempty"`
}
