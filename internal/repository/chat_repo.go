package repository

import (
	"context"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
)

// ChatRepository chat_history data access
type ChatRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	// ListRecentByUser returns the newest limit exchanges, oldest first.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
}

type chatRepo struct {
	db *gorm.DB
}

// NewChatRepo creates a ChatRepository
func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
