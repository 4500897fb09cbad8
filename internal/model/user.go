package model

// Roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User maps to users
type User struct {
	UserID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email          string  `gorm:"type:varchar(255);not null;uniqueIndex"        json:"email"`
	PasswordHash   string  `gorm:"type:varchar(255);not null"                    json:"-"`
	FirstName      string  `gorm:"type:varchar(100);not null"                    json:"first_name"`
	LastName       string  `gorm:"type:varchar(100);not null"                    json:"last_name"`
	Major          *string `gorm:"type:varchar(100)"                             json:"major"`
	GraduationYear *int    `gorm:"type:integer"                                  json:"graduation_year"`
	Role           string  `gorm:"type:varchar(20);not null;default:'student'"   json:"role"`
	Timestamps
}

// TableName overrides the table name
func (User) TableName() string { return "users" }
