package repository

import "gorm.io/gorm"

// Repository aggregates every repository
type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Schedule   ScheduleRepository
	Transcript TranscriptRepository
	GPA        GPARepository
	Chat       ChatRepository
}

// NewRepository builds the aggregate over one gorm handle
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Course:     NewCourseRepo(db),
		Schedule:   NewScheduleRepo(db),
		Transcript: NewTranscriptRepo(db),
		GPA:        NewGPARepo(db),
		Chat:       NewChatRepo(db),
	}
}
