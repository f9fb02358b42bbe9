package repository

import (
	"errors"
	"fmt"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCardRepository struct {
	DB *gorm.DB
}

func NewDefaultCardRepository(db *gorm.DB) *DefaultCardRepository {
	return &DefaultCardRepository{DB: db}
}

func (r *DefaultCardRepository) CreateCards(cards []*domain.Card) error {
	cardModels := make([]*models.CardModel, len(cards))
	for i, card := range cards {
		cardModels[i] = mappers.ToGORMCard(card)
	}
	if err := r.DB.Create(&cardModels).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{Resource: "card", Key: "control number or sequence", Err: err}
		}
		return err
	}
	return nil
}

func (r *DefaultCardRepository) GetCardByID(cardID string) (*domain.Card, error) {
	var cardModel models.CardModel
	if err := r.DB.First(&cardModel, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCard(&cardModel), nil
}

func (r *DefaultCardRepository) GetCardByCode(canonical string) (*domain.Card, error) {
	var cardModel models.CardModel
	if err := r.DB.First(&cardModel, "canonical_code = ?", canonical).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCard(&cardModel), nil
}

func (r *DefaultCardRepository) GetCardBySequence(seq int) (*domain.Card, error) {
	var cardModel models.CardModel
	if err := r.DB.First(&cardModel, "sequence_number = ?", seq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCard(&cardModel), nil
}

func (r *DefaultCardRepository) GetCardsInRange(start, end int) ([]*domain.Card, error) {
	var cardModels []models.CardModel
	if err := r.DB.
		Where("sequence_number >= ? AND sequence_number <= ?", start, end).
		Order("sequence_number ASC").
		Find(&cardModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find cards in range [%d,%d]: %w", start, end, err)
	}

	cards := make([]*domain.Card, len(cardModels))
	for i, cardModel := range cardModels {
		cards[i] = mappers.ToDomainCard(&cardModel)
	}
	return cards, nil
}

func (r *DefaultCardRepository) GetCardsByBatch(batchID string, page, limit int) ([]*domain.Card, int64, error) {
	return r.pagedCards("batch_id = ?", batchID, page, limit)
}

func (r *DefaultCardRepository) GetCardsByClinic(clinicID string, page, limit int) ([]*domain.Card, int64, error) {
	return r.pagedCards("assigned_clinic_id = ?", clinicID, page, limit)
}

func (r *DefaultCardRepository) pagedCards(cond string, arg any, page, limit int) ([]*domain.Card, int64, error) {
	baseQuery := r.DB.Model(&models.CardModel{}).Where(cond, arg)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var cardModels []models.CardModel
	if err := baseQuery.
		Order("sequence_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&cardModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find cards: %w", err)
	}

	cards := make([]*domain.Card, len(cardModels))
	for i, cardModel := range cardModels {
		cards[i] = mappers.ToDomainCard(&cardModel)
	}
	return cards, total, nil
}

// SaveTransition writes the new card state and its audit row atomically.
// A transition without its history entry must never be observable.
func (r *DefaultCardRepository) SaveTransition(card *domain.Card, entry *domain.AssignmentHistory) error {
	cardModel := mappers.ToGORMCard(card)
	entryModel := mappers.ToGORMAssignmentEntry(entry)

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CardModel{}).
			Where("id = ?", cardModel.ID).
			Select("Status", "AssignedClinicID", "ClinicCode", "AssignedAt", "ActivatedAt", "ExpiresAt", "UpdatedAt").
			Updates(cardModel).Error; err != nil {
			return fmt.Errorf("failed to update card %s: %w", card.ID, err)
		}
		if err := tx.Create(entryModel).Error; err != nil {
			return fmt.Errorf("failed to append assignment history for card %s: %w", card.ID, err)
		}
		return nil
	})
}

func (r *DefaultCardRepository) SaveCodeChange(card *domain.Card, entry *domain.CardCodeHistory) error {
	cardModel := mappers.ToGORMCard(card)
	entryModel := mappers.ToGORMCodeEntry(entry)

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CardModel{}).
			Where("id = ?", cardModel.ID).
			Select("CanonicalCode", "Passcode", "LocationCode", "ClinicCode", "UpdatedAt").
			Updates(cardModel).Error; err != nil {
			if isDuplicate(err) {
				return &domain.ConflictError{Resource: "card", Key: cardModel.CanonicalCode, Err: err}
			}
			return fmt.Errorf("failed to update card codes %s: %w", card.ID, err)
		}
		if err := tx.Create(entryModel).Error; err != nil {
			return fmt.Errorf("failed to append code history for card %s: %w", card.ID, err)
		}
		return nil
	})
}

func (r *DefaultCardRepository) NextSequence() (int, error) {
	var max *int
	if err := r.DB.Model(&models.CardModel{}).
		Select("MAX(sequence_number)").
		Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("failed to read max sequence: %w", err)
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *DefaultCardRepository) CountByStatus(status domain.CardStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&models.CardModel{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *DefaultCardRepository) CountByClinic(clinicID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.CardModel{}).Where("assigned_clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}
