package repository

import (
	"context"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
)

// GPARepository gpa_records data access
type GPARepository interface {
	Create(ctx context.Context, record *model.GPARecord) error
	GetByID(ctx context.Context, id string) (*model.GPARecord, error)
	ListByUser(ctx context.Context, userID string) ([]model.GPARecord, error)
}

type gpaRepo struct {
	db *gorm.DB
}

// NewGPARepo creates a GPARepository
func NewGPARepo(db *gorm.DB) GPARepository {
	return &gpaRepo{db: db}
}

func (r *gpaRepo) Create(ctx context.Context, record *model.GPARecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *gpaRepo) GetByID(ctx context.Context, id string) (*model.GPARecord, error) {
	var record model.GPARecord
	err := r.db.WithContext(ctx).
		Where("record_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUser returns records newest first
func (r *gpaRepo) ListByUser(ctx context.Context, userID string) ([]model.GPARecord, error) {
	var records []model.GPARecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC, recorded_at DESC").
		Find(&records).Error
	return records, err
}
