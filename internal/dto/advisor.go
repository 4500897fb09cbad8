package dto

// ── advisor requests ──

// ChatTurn a prior message supplied by the client as context
type ChatTurn struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=4000"`
}

// ChatRequest one question to the advisor
type ChatRequest struct {
	Message string     `json:"message" binding:"required,max=4000"`
	Context []ChatTurn `json:"context" binding:"omitempty,max=50,dive"`
}

// RecommendationRequest asks for course recommendations for a term
type RecommendationRequest struct {
	Interests        string   `json:"interests"         binding:"max=1000"`
	CompletedCourses []string `json:"completed_courses" binding:"omitempty,max=100"`
	Semester         string   `json:"semester"          binding:"required,semester_term"`
}

// ── advisor responses ──

// ChatResponse the advisor's answer
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// RecommendationResponse recommendations text and the candidate courses
type RecommendationResponse struct {
	Recommendations  string           `json:"recommendations"`
	AvailableCourses []CourseResponse `json:"available_courses"`
	Timestamp        string           `json:"timestamp"`
}

// ChatHistoryItem one stored exchange
type ChatHistoryItem struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	CreatedAt   string `json:"created_at"`
}

// ChatHistoryResponse exchanges in chronological order
type ChatHistoryResponse struct {
	History []ChatHistoryItem `json:"history"`
	Count   int               `json:"count"`
}
