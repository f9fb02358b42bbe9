package repository

import (
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultHistoryRepository struct {
	DB *gorm.DB
}

func NewDefaultHistoryRepository(db *gorm.DB) *DefaultHistoryRepository {
	return &DefaultHistoryRepository{DB: db}
}

func (r *DefaultHistoryRepository) AppendAssignment(entry *domain.AssignmentHistory) error {
	return r.DB.Create(mappers.ToGORMAssignmentEntry(entry)).Error
}

func (r *DefaultHistoryRepository) GetAssignmentHistory(cardID string) ([]*domain.AssignmentHistory, error) {
	var entryModels []models.AssignmentHistoryModel
	if err := r.DB.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.AssignmentHistory, len(entryModels))
	for i, entryModel := range entryModels {
		entries[i] = mappers.ToDomainAssignmentEntry(&entryModel)
	}
	return entries, nil
}

func (r *DefaultHistoryRepository) GetCodeHistory(cardID string) ([]*domain.CardCodeHistory, error) {
	var entryModels []models.CardCodeHistoryModel
	if err := r.DB.
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.CardCodeHistory, len(entryModels))
	for i, entryModel := range entryModels {
		entries[i] = mappers.ToDomainCodeEntry(&entryModel)
	}
	return entries, nil
}
