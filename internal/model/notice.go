package model

import (
	"time"

	"github.com/google/uuid"
)

type NoticePriority string

const (
	NoticePriorityLow    NoticePriority = "low"
	NoticePriorityNormal NoticePriority = "normal"
	NoticePriorityHigh   NoticePriority = "high"
	NoticePriorityUrgent NoticePriority = "urgent"
)

// NoticePriorities порядок уровней важности, от низкого к высокому
var NoticePriorities = []NoticePriority{
	NoticePriorityLow,
	NoticePriorityNormal,
	NoticePriorityHigh,
	NoticePriorityUrgent,
}

// IsValid проверяет принадлежность набору уровней
func (p NoticePriority) IsValid() bool {
	for _, known := range NoticePriorities {
		if p == known {
			return true
		}
	}
	return false
}

// Notice объявление для жителей
type Notice struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Priority    NoticePriority `json:"priority"`
	IsActive    bool           `json:"is_active"`
	PublishedBy int64          `json:"published_by"`
	PublishedAt time.Time      `json:"published_at"`
	ExpiresAt   *time.Time     `json:"expires_at"` // nil = бессрочно
}

// IsExpired истёк ли срок объявления к моменту now
func (n *Notice) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && !now.Before(*n.ExpiresAt)
}
