package usecase

import (
	"strings"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/google/uuid"
)

type ClinicUsecase interface {
	CreateClinic(clinic *domain.Clinic) error
	GetClinicByID(clinicID string) (*domain.Clinic, error)
	GetClinicByCode(clinicCode string) (*domain.Clinic, error)
	GetClinics(page, limit int) ([]*domain.Clinic, int64, error)
	SetClinicStatus(clinicID string, status domain.ClinicStatus) error
}

type DefaultClinicUsecase struct {
	clinicRepo domain.ClinicRepository
	versions   VersionUsecase
}

func NewDefaultClinicUsecase(clinicRepo domain.ClinicRepository, versions VersionUsecase) *DefaultClinicUsecase {
	return &DefaultClinicUsecase{
		clinicRepo: clinicRepo,
		versions:   versions,
	}
}

func (uc *DefaultClinicUsecase) CreateClinic(clinic *domain.Clinic) error {
	clinic.ClinicCode = strings.ToUpper(strings.TrimSpace(clinic.ClinicCode))
	if clinic.ClinicCode == "" {
		return &domain.ValidationError{Field: "clinic_code", Value: clinic.ClinicCode, Reason: "must not be empty"}
	}
	if clinic.ID == "" {
		clinic.ID = uuid.New().String()
	}
	if clinic.Status == "" {
		clinic.Status = domain.ClinicActive
	}
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = clinic.CreatedAt

	if err := uc.clinicRepo.CreateClinic(clinic); err != nil {
		return err
	}
	uc.versions.Bump(domain.ComponentSettings, "clinic created: "+clinic.ClinicCode)
	return nil
}

func (uc *DefaultClinicUsecase) GetClinicByID(clinicID string) (*domain.Clinic, error) {
	return uc.clinicRepo.GetClinicByID(clinicID)
}

func (uc *DefaultClinicUsecase) GetClinicByCode(clinicCode string) (*domain.Clinic, error) {
	return uc.clinicRepo.GetClinicByCode(strings.ToUpper(strings.TrimSpace(clinicCode)))
}

func (uc *DefaultClinicUsecase) GetClinics(page, limit int) ([]*domain.Clinic, int64, error) {
	return uc.clinicRepo.GetClinics(page, limit)
}

func (uc *DefaultClinicUsecase) SetClinicStatus(clinicID string, status domain.ClinicStatus) error {
	clinic, err := uc.clinicRepo.GetClinicByID(clinicID)
	if err != nil {
		return err
	}
	if clinic.Status == status {
		return nil
	}
	clinic.Status = status
	clinic.UpdatedAt = time.Now()
	if err := uc.clinicRepo.UpdateClinic(clinic); err != nil {
		return err
	}
	uc.versions.Bump(domain.ComponentSettings, "clinic status changed: "+clinic.ClinicCode)
	return nil
}
