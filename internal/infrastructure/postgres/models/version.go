package models

import "time"

type SystemVersionModel struct {
	Component   string `gorm:"primaryKey"`
	Version     int64  `gorm:"not null"`
	Description string
	UpdatedAt   time.Time
}

type SessionDraftModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"uniqueIndex:idx_user_component,priority:1;not null"`
	Component string `gorm:"uniqueIndex:idx_user_component,priority:2;not null"`
	State     string `gorm:"type:jsonb"`
	SavedAt   time.Time
	ExpiresAt time.Time `gorm:"index:idx_draft_expires"`
}
