package domain

import "time"

type ClinicStatus string

const (
	ClinicActive   ClinicStatus = "ACTIVE"
	ClinicInactive ClinicStatus = "INACTIVE"
)

type Clinic struct {
	ID         string
	ClinicCode string
	Name       string
	RegionCode string
	Status     ClinicStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
