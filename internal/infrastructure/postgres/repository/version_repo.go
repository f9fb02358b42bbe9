package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultVersionRepository struct {
	DB *gorm.DB
}

func NewDefaultVersionRepository(db *gorm.DB) *DefaultVersionRepository {
	return &DefaultVersionRepository{DB: db}
}

// Bump is a single upsert: the first bump creates the row at 1, later
// bumps increment in-database, so two concurrent bumps can never produce
// the same value.
func (r *DefaultVersionRepository) Bump(component domain.Component, description string) (int64, error) {
	versionModel := models.SystemVersionModel{
		Component:   string(component),
		Version:     1,
		Description: description,
		UpdatedAt:   time.Now(),
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "component"}},
		DoUpdates: clause.Assignments(map[string]any{
			"version":     gorm.Expr("version + 1"),
			"description": description,
			"updated_at":  time.Now(),
		}),
	}).Create(&versionModel).Error
	if err != nil {
		return 0, fmt.Errorf("failed to bump version for %s: %w", component, err)
	}

	// The in-database increment does not flow back into the struct.
	if err := r.DB.First(&versionModel, "component = ?", component).Error; err != nil {
		return 0, err
	}
	return versionModel.Version, nil
}

func (r *DefaultVersionRepository) Get(component domain.Component) (*domain.SystemVersion, error) {
	var versionModel models.SystemVersionModel
	if err := r.DB.First(&versionModel, "component = ?", component).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.SystemVersion{Component: component, Version: 0}, nil
		}
		return nil, err
	}
	return mappers.ToDomainVersion(&versionModel), nil
}

func (r *DefaultVersionRepository) GetAll() ([]*domain.SystemVersion, error) {
	var versionModels []models.SystemVersionModel
	if err := r.DB.Find(&versionModels).Error; err != nil {
		return nil, err
	}

	versions := make([]*domain.SystemVersion, len(versionModels))
	for i, versionModel := range versionModels {
		versions[i] = mappers.ToDomainVersion(&versionModel)
	}
	return versions, nil
}
