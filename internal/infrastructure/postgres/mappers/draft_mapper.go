package mappers

import (
	"encoding/json"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
)

func ToDomainDraft(model *models.SessionDraftModel) (*domain.SessionDraft, error) {
	state := make(map[string]any)
	if model.State != "" {
		if err := json.Unmarshal([]byte(model.State), &state); err != nil {
			return nil, err
		}
	}
	return &domain.SessionDraft{
		ID:        model.ID,
		UserID:    model.UserID,
		Component: model.Component,
		State:     state,
		SavedAt:   model.SavedAt,
		ExpiresAt: model.ExpiresAt,
	}, nil
}

func ToGORMDraft(draft *domain.SessionDraft) (*models.SessionDraftModel, error) {
	state, err := json.Marshal(draft.State)
	if err != nil {
		return nil, err
	}
	return &models.SessionDraftModel{
		ID:        draft.ID,
		UserID:    draft.UserID,
		Component: draft.Component,
		State:     string(state),
		SavedAt:   draft.SavedAt,
		ExpiresAt: draft.ExpiresAt,
	}, nil
}

func ToDomainVersion(model *models.SystemVersionModel) *domain.SystemVersion {
	return &domain.SystemVersion{
		Component:   domain.Component(model.Component),
		Version:     model.Version,
		Description: model.Description,
		UpdatedAt:   model.UpdatedAt,
	}
}
