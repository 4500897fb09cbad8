package dto

// ── gpa requests ──

// GradeEntry one graded course
type GradeEntry struct {
	Course  string  `json:"course"  binding:"max=100"`
	Grade   string  `json:"grade"   binding:"required,max=3"`
	Credits float64 `json:"credits" binding:"gte=0,lte=12"`
}

// CalculateGPARequest ad-hoc GPA calculation
type CalculateGPARequest struct {
	Grades []GradeEntry `json:"grades" binding:"omitempty,max=100,dive"`
}

// SaveGPARequest stores a term GPA. Missing gpa/total_credits are computed from grades.
type SaveGPARequest struct {
	Semester     string       `json:"semester"      binding:"required,semester_term"`
	Year         int          `json:"year"          binding:"required,min=2000,max=2100"`
	GPA          *float64     `json:"gpa"           binding:"omitempty,gte=0,lte=4"`
	TotalCredits *float64     `json:"total_credits" binding:"omitempty,gte=0"`
	Grades       []GradeEntry `json:"grades"        binding:"omitempty,max=100,dive"`
}

// PredictGPARequest what-if calculation on top of a current GPA
type PredictGPARequest struct {
	CurrentGPA     *float64     `json:"current_gpa"     binding:"omitempty,gte=0,lte=4"`
	CurrentCredits *float64     `json:"current_credits" binding:"omitempty,gte=0"`
	NewGrades      []GradeEntry `json:"new_grades"      binding:"omitempty,max=100,dive"`
}

// ── gpa responses ──

// GradeBreakdown quality points of one grade
type GradeBreakdown struct {
	Course  string  `json:"course"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
	Points  float64 `json:"points"`
}

// CalculateGPAResponse result of a calculation; GPA formatted to two decimals
type CalculateGPAResponse struct {
	GPA          string           `json:"gpa"`
	TotalCredits float64          `json:"total_credits"`
	GradeCount   int              `json:"grade_count"`
	Breakdown    []GradeBreakdown `json:"breakdown"`
}

// SaveGPAResponse stored record summary
type SaveGPAResponse struct {
	RecordID string  `json:"record_id"`
	GPA      float64 `json:"gpa"`
	Semester string  `json:"semester"`
	Year     int     `json:"year"`
}

// GPARecordResponse stored record with decoded grades
type GPARecordResponse struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Semester     string       `json:"semester"`
	Year         int          `json:"year"`
	GPA          float64      `json:"gpa"`
	TotalCredits float64      `json:"total_credits"`
	Grades       []GradeEntry `json:"grades"`
	RecordedAt   string       `json:"recorded_at"`
}

// GPAHistoryResponse a user's records and the cumulative GPA
type GPAHistoryResponse struct {
	Records       []GPARecordResponse `json:"records"`
	Count         int                 `json:"count"`
	CumulativeGPA string              `json:"cumulative_gpa"`
	TotalCredits  float64             `json:"total_credits"`
}

// PredictGPAResponse result of a prediction
type PredictGPAResponse struct {
	CurrentGPA   string  `json:"current_gpa"`
	PredictedGPA string  `json:"predicted_gpa"`
	Change       string  `json:"change"`
	NewCredits   float64 `json:"new_credits"`
}
