package dto

// ── transcript responses ──

// TranscriptResponse upload metadata
type TranscriptResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	UploadedAt string `json:"uploaded_at"`
}

// UploadTranscriptResponse result of an upload
type UploadTranscriptResponse struct {
	TranscriptID string `json:"transcript_id"`
	Filename     string `json:"filename"`
}

// TranscriptListResponse a user's uploads
type TranscriptListResponse struct {
	Transcripts []TranscriptResponse `json:"transcripts"`
	Count       int                  `json:"count"`
}

// TranscriptAnalysis derived academic summary stored as transcript_analysis.analysis_data
type TranscriptAnalysis struct {
	TotalCredits            float64  `json:"total_credits"`
	GPA                     float64  `json:"gpa"`
	CompletedCourses        []string `json:"completed_courses"`
	RemainingRequirements   []string `json:"remaining_requirements"`
	EstimatedGraduationDate *string  `json:"estimated_graduation_date"`
	AcademicStanding        string   `json:"academic_standing"`
}

// AnalysisResponse an analysis with its timestamp
type AnalysisResponse struct {
	TranscriptID string             `json:"transcript_id"`
	Analysis     TranscriptAnalysis `json:"analysis"`
	AnalyzedAt   string             `json:"analyzed_at"`
}
