package mappers

import (
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
)

func ToDomainCard(model *models.CardModel) *domain.Card {
	card := &domain.Card{
		ID: model.ID,
		Code: domain.CardCode{
			Canonical: model.CanonicalCode,
			Sequence:  model.SequenceNumber,
		},
		Passcode:         model.Passcode,
		LocationCode:     model.LocationCode,
		ClinicCode:       model.ClinicCode,
		Status:           model.Status,
		AssignedAt:       model.AssignedAt,
		ActivatedAt:      model.ActivatedAt,
		ExpiresAt:        model.ExpiresAt,
		MigrationVersion: model.MigrationVersion,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	if model.BatchID != nil {
		card.BatchID = *model.BatchID
	}
	if model.AssignedClinicID != nil {
		card.AssignedClinicID = *model.AssignedClinicID
	}
	return card
}

func ToGORMCard(card *domain.Card) *models.CardModel {
	model := &models.CardModel{
		ID:               card.ID,
		CanonicalCode:    card.Code.Canonical,
		SequenceNumber:   card.Code.Sequence,
		Passcode:         card.Passcode,
		LocationCode:     card.LocationCode,
		ClinicCode:       card.ClinicCode,
		Status:           card.Status,
		AssignedAt:       card.AssignedAt,
		ActivatedAt:      card.ActivatedAt,
		ExpiresAt:        card.ExpiresAt,
		MigrationVersion: card.MigrationVersion,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
	if card.BatchID != "" {
		model.BatchID = &card.BatchID
	}
	if card.AssignedClinicID != "" {
		model.AssignedClinicID = &card.AssignedClinicID
	}
	return model
}

func ToDomainBatch(model *models.CardBatchModel) *domain.CardBatch {
	return &domain.CardBatch{
		ID:             model.ID,
		BatchNumber:    model.BatchNumber,
		Mode:           domain.GenerationMode(model.Mode),
		RequestedCount: model.RequestedCount,
		InsertedCount:  model.InsertedCount,
		LocationPrefix: model.LocationPrefix,
		RangeStart:     model.RangeStart,
		RangeEnd:       model.RangeEnd,
		CreatedBy:      model.CreatedBy,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMBatch(batch *domain.CardBatch) *models.CardBatchModel {
	return &models.CardBatchModel{
		ID:             batch.ID,
		BatchNumber:    batch.BatchNumber,
		Mode:           string(batch.Mode),
		RequestedCount: batch.RequestedCount,
		InsertedCount:  batch.InsertedCount,
		LocationPrefix: batch.LocationPrefix,
		RangeStart:     batch.RangeStart,
		RangeEnd:       batch.RangeEnd,
		CreatedBy:      batch.CreatedBy,
		CreatedAt:      batch.CreatedAt,
		UpdatedAt:      batch.UpdatedAt,
	}
}
