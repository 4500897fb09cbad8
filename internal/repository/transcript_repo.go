package repository

import (
	"context"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
)

// TranscriptRepository transcript metadata and analysis data access
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *model.Transcript) error
	GetByID(ctx context.Context, id string) (*model.Transcript, error)
	ListByUser(ctx context.Context, userID string) ([]model.Transcript, error)
	CreateAnalysis(ctx context.Context, analysis *model.TranscriptAnalysis) error
	GetLatestAnalysis(ctx context.Context, transcriptID string) (*model.TranscriptAnalysis, error)
}

type transcriptRepo struct {
	db *gorm.DB
}

// NewTranscriptRepo creates a TranscriptRepository
func NewTranscriptRepo(db *gorm.DB) TranscriptRepository {
	return &transcriptRepo{db: db}
}

func (r *transcriptRepo) Create(ctx context.Context, transcript *model.Transcript) error {
	return r.db.WithContext(ctx).Create(transcript).Error
}

func (r *transcriptRepo) GetByID(ctx context.Context, id string) (*model.Transcript, error) {
	var transcript model.Transcript
	err := r.db.WithContext(ctx).
		Where("transcript_id = ?", id).
		First(&transcript).Error
	if err != nil {
		return nil, err
	}
	return &transcript, nil
}

func (r *transcriptRepo) ListByUser(ctx context.Context, userID string) ([]model.Transcript, error) {
	var transcripts []model.Transcript
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&transcripts).Error
	return transcripts, err
}

func (r *transcriptRepo) CreateAnalysis(ctx context.Context, analysis *model.TranscriptAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *transcriptRepo) GetLatestAnalysis(ctx context.Context, transcriptID string) (*model.TranscriptAnalysis, error) {
	var analysis model.TranscriptAnalysis
	err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("analyzed_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
