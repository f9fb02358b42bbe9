package repository

import (
	"errors"
	"fmt"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultClinicRepository struct {
	DB *gorm.DB
}

func NewDefaultClinicRepository(db *gorm.DB) *DefaultClinicRepository {
	return &DefaultClinicRepository{DB: db}
}

func (r *DefaultClinicRepository) CreateClinic(clinic *domain.Clinic) error {
	clinicModel := mappers.ToGORMClinic(clinic)
	if err := r.DB.Create(clinicModel).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{Resource: "clinic", Key: clinic.ClinicCode, Err: err}
		}
		return err
	}
	return nil
}

func (r *DefaultClinicRepository) GetClinicByID(clinicID string) (*domain.Clinic, error) {
	var clinicModel models.ClinicModel
	if err := r.DB.First(&clinicModel, "id = ?", clinicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, err
	}
	return mappers.ToDomainClinic(&clinicModel), nil
}

func (r *DefaultClinicRepository) GetClinicByCode(clinicCode string) (*domain.Clinic, error) {
	var clinicModel models.ClinicModel
	if err := r.DB.First(&clinicModel, "clinic_code = ?", clinicCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, err
	}
	return mappers.ToDomainClinic(&clinicModel), nil
}

func (r *DefaultClinicRepository) GetClinics(page, limit int) ([]*domain.Clinic, int64, error) {
	var total int64
	if err := r.DB.Model(&models.ClinicModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clinics: %w", err)
	}

	if page < 1 {
		page = 1
	}
	var clinicModels []models.ClinicModel
	if err := r.DB.
		Order("clinic_code ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&clinicModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find clinics: %w", err)
	}

	clinics := make([]*domain.Clinic, len(clinicModels))
	for i, clinicModel := range clinicModels {
		clinics[i] = mappers.ToDomainClinic(&clinicModel)
	}
	return clinics, total, nil
}

func (r *DefaultClinicRepository) GetAllClinics() ([]*domain.Clinic, error) {
	var clinicModels []models.ClinicModel
	if err := r.DB.Order("clinic_code ASC").Find(&clinicModels).Error; err != nil {
		return nil, err
	}

	clinics := make([]*domain.Clinic, len(clinicModels))
	for i, clinicModel := range clinicModels {
		clinics[i] = mappers.ToDomainClinic(&clinicModel)
	}
	return clinics, nil
}

func (r *DefaultClinicRepository) UpdateClinic(clinic *domain.Clinic) error {
	clinicModel := mappers.ToGORMClinic(clinic)
	return r.DB.Model(&models.ClinicModel{}).
		Where("id = ?", clinic.ID).
		Select("Name", "RegionCode", "Status", "UpdatedAt").
		Updates(clinicModel).Error
}
