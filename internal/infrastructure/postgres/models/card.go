package models

import (
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
)

type CardModel struct {
	ID               string            `gorm:"primaryKey;type:uuid"`
	CanonicalCode    string            `gorm:"uniqueIndex:idx_canonical_code;not null"`
	SequenceNumber   int               `gorm:"uniqueIndex:idx_sequence;not null"`
	Passcode         string            `gorm:"not null"`
	LocationCode     string
	ClinicCode       string
	Status           domain.CardStatus `gorm:"index:idx_status"`
	BatchID          *string           `gorm:"type:uuid;index:idx_card_batch"`
	Batch            *CardBatchModel   `gorm:"foreignKey:BatchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	AssignedClinicID *string           `gorm:"type:uuid;index:idx_card_clinic"`
	AssignedAt       *time.Time
	ActivatedAt      *time.Time
	ExpiresAt        *time.Time        `gorm:"index:idx_expires"`
	MigrationVersion int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CardBatchModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	BatchNumber    string `gorm:"uniqueIndex:idx_batch_number;not null"`
	Mode           string
	RequestedCount int
	InsertedCount  int
	LocationPrefix string
	RangeStart     int
	RangeEnd       int
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
