package model

import "time"

// ChatMessage maps to chat_history: one question and the advisor's answer.
type ChatMessage struct {
	ChatID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"chat_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                      json:"user_id"`
	UserMessage string    `gorm:"type:text;not null"                            json:"user_message"`
	AIResponse  string    `gorm:"column:ai_response;type:text;not null"         json:"ai_response"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
}

// TableName overrides the table name
func (ChatMessage) TableName() string { return "chat_history" }
