package models

import "time"

type AssignmentHistoryModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CardID      string `gorm:"type:uuid;index:idx_assignment_card;not null"`
	Action      string `gorm:"not null"`
	OldStatus   string
	NewStatus   string
	OldClinicID string
	NewClinicID string
	Actor       string
	CreatedAt   time.Time `gorm:"index:idx_assignment_created"`
}

type CardCodeHistoryModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CardID    string `gorm:"type:uuid;index:idx_codehistory_card;not null"`
	Action    string `gorm:"not null"`
	Field     string
	OldValue  string
	NewValue  string
	Actor     string
	CreatedAt time.Time
}
