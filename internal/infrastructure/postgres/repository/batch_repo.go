package repository

import (
	"errors"
	"fmt"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBatchRepository struct {
	DB *gorm.DB
}

func NewDefaultBatchRepository(db *gorm.DB) *DefaultBatchRepository {
	return &DefaultBatchRepository{DB: db}
}

func (r *DefaultBatchRepository) CreateBatch(batch *domain.CardBatch) error {
	batchModel := mappers.ToGORMBatch(batch)
	if err := r.DB.Create(batchModel).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{Resource: "batch", Key: batch.BatchNumber, Err: err}
		}
		return err
	}
	return nil
}

func (r *DefaultBatchRepository) GetBatchByID(batchID string) (*domain.CardBatch, error) {
	var batchModel models.CardBatchModel
	if err := r.DB.First(&batchModel, "id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBatch(&batchModel), nil
}

func (r *DefaultBatchRepository) GetBatchByNumber(batchNumber string) (*domain.CardBatch, error) {
	var batchModel models.CardBatchModel
	if err := r.DB.First(&batchModel, "batch_number = ?", batchNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBatch(&batchModel), nil
}

func (r *DefaultBatchRepository) GetBatches(page, limit int) ([]*domain.CardBatch, int64, error) {
	var total int64
	if err := r.DB.Model(&models.CardBatchModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	if page < 1 {
		page = 1
	}
	var batchModels []models.CardBatchModel
	if err := r.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&batchModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find batches: %w", err)
	}

	batches := make([]*domain.CardBatch, len(batchModels))
	for i, batchModel := range batchModels {
		batches[i] = mappers.ToDomainBatch(&batchModel)
	}
	return batches, total, nil
}

func (r *DefaultBatchRepository) UpdateInsertedCount(batchID string, inserted int) error {
	return r.DB.Model(&models.CardBatchModel{}).
		Where("id = ?", batchID).
		Update("inserted_count", inserted).Error
}

// DeleteBatch refuses while cards still reference the batch: a batch must
// never silently orphan its cards.
func (r *DefaultBatchRepository) DeleteBatch(batchID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.CardModel{}).Where("batch_id = ?", batchID).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return domain.ErrBatchHasCards
		}
		return tx.Delete(&models.CardBatchModel{}, "id = ?", batchID).Error
	})
}

func (r *DefaultBatchRepository) FindIncompleteBatches() ([]*domain.CardBatch, error) {
	var batchModels []models.CardBatchModel
	if err := r.DB.
		Where("inserted_count < requested_count").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]*domain.CardBatch, len(batchModels))
	for i, batchModel := range batchModels {
		batches[i] = mappers.ToDomainBatch(&batchModel)
	}
	return batches, nil
}
