package domain

type ClinicRepository interface {
	CreateClinic(clinic *Clinic) error
	GetClinicByID(clinicID string) (*Clinic, error)
	GetClinicByCode(clinicCode string) (*Clinic, error)
	GetClinics(page, limit int) ([]*Clinic, int64, error)
	GetAllClinics() ([]*Clinic, error)
	UpdateClinic(clinic *Clinic) error
}
