package mappers

import (
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
)

func ToDomainClinic(model *models.ClinicModel) *domain.Clinic {
	return &domain.Clinic{
		ID:         model.ID,
		ClinicCode: model.ClinicCode,
		Name:       model.Name,
		RegionCode: model.RegionCode,
		Status:     domain.ClinicStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMClinic(clinic *domain.Clinic) *models.ClinicModel {
	return &models.ClinicModel{
		ID:         clinic.ID,
		ClinicCode: clinic.ClinicCode,
		Name:       clinic.Name,
		RegionCode: clinic.RegionCode,
		Status:     string(clinic.Status),
		CreatedAt:  clinic.CreatedAt,
		UpdatedAt:  clinic.UpdatedAt,
	}
}
