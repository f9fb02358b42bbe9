package mappers

import (
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
)

func ToDomainAssignmentEntry(model *models.AssignmentHistoryModel) *domain.AssignmentHistory {
	return &domain.AssignmentHistory{
		ID:          model.ID,
		CardID:      model.CardID,
		Action:      domain.HistoryAction(model.Action),
		OldStatus:   domain.CardStatus(model.OldStatus),
		NewStatus:   domain.CardStatus(model.NewStatus),
		OldClinicID: model.OldClinicID,
		NewClinicID: model.NewClinicID,
		Actor:       model.Actor,
		CreatedAt:   model.CreatedAt,
	}
}

func ToGORMAssignmentEntry(entry *domain.AssignmentHistory) *models.AssignmentHistoryModel {
	return &models.AssignmentHistoryModel{
		ID:          entry.ID,
		CardID:      entry.CardID,
		Action:      string(entry.Action),
		OldStatus:   string(entry.OldStatus),
		NewStatus:   string(entry.NewStatus),
		OldClinicID: entry.OldClinicID,
		NewClinicID: entry.NewClinicID,
		Actor:       entry.Actor,
		CreatedAt:   entry.CreatedAt,
	}
}

func ToDomainCodeEntry(model *models.CardCodeHistoryModel) *domain.CardCodeHistory {
	return &domain.CardCodeHistory{
		ID:        model.ID,
		CardID:    model.CardID,
		Action:    domain.HistoryAction(model.Action),
		Field:     model.Field,
		OldValue:  model.OldValue,
		NewValue:  model.NewValue,
		Actor:     model.Actor,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMCodeEntry(entry *domain.CardCodeHistory) *models.CardCodeHistoryModel {
	return &models.CardCodeHistoryModel{
		ID:        entry.ID,
		CardID:    entry.CardID,
		Action:    string(entry.Action),
		Field:     entry.Field,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		Actor:     entry.Actor,
		CreatedAt: entry.CreatedAt,
	}
}
