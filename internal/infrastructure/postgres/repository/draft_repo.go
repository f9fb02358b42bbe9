package repository

import (
	"errors"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDraftRepository struct {
	DB *gorm.DB
}

func NewDefaultDraftRepository(db *gorm.DB) *DefaultDraftRepository {
	return &DefaultDraftRepository{DB: db}
}

// SaveDraft upserts on (user, component); the newest save wins.
func (r *DefaultDraftRepository) SaveDraft(draft *domain.SessionDraft) error {
	draftModel, err := mappers.ToGORMDraft(draft)
	if err != nil {
		return err
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "component"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "saved_at", "expires_at"}),
	}).Create(draftModel).Error
}

func (r *DefaultDraftRepository) GetDraft(userID, component string) (*domain.SessionDraft, error) {
	var draftModel models.SessionDraftModel
	if err := r.DB.First(&draftModel, "user_id = ? AND component = ?", userID, component).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	draft, err := mappers.ToDomainDraft(&draftModel)
	if err != nil {
		return nil, err
	}
	// Expired drafts are invisible; the sweep will remove the row.
	if draft.Expired(time.Now()) {
		return nil, nil
	}
	return draft, nil
}

func (r *DefaultDraftRepository) DeleteDraft(userID, component string) error {
	return r.DB.Delete(&models.SessionDraftModel{}, "user_id = ? AND component = ?", userID, component).Error
}

func (r *DefaultDraftRepository) DeleteExpired() (int64, error) {
	res := r.DB.Delete(&models.SessionDraftModel{}, "expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}
