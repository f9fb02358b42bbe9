package models

import "time"

type ClinicModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	ClinicCode string `gorm:"uniqueIndex:idx_clinic_code;not null"`
	Name       string
	RegionCode string
	Status     string `gorm:"index:idx_clinic_status"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
