package model

import "time"

// Transcript maps to transcripts. Only upload metadata is stored.
type Transcript struct {
	TranscriptID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"transcript_id"`
	UserID       string    `gorm:"type:uuid;not null;index"                      json:"user_id"`
	Filename     string    `gorm:"type:varchar(255);not null"                    json:"filename"`
	FileSize     int64     `gorm:"not null"                                      json:"file_size"`
	MimeType     string    `gorm:"type:varchar(100);not null"                    json:"mime_type"`
	UploadedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime" json:"uploaded_at"`
}

// TableName overrides the table name
func (Transcript) TableName() string { return "transcripts" }

// TranscriptAnalysis maps to transcript_analysis
type TranscriptAnalysis struct {
	AnalysisID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"analysis_id"`
	TranscriptID string    `gorm:"type:uuid;not null;index"                      json:"transcript_id"`
	AnalysisData JSON      `gorm:"type:jsonb;not null"                           json:"analysis_data"`
	AnalyzedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime" json:"analyzed_at"`
}

// TableName overrides the table name
func (TranscriptAnalysis) TableName() string { return "transcript_analysis" }
