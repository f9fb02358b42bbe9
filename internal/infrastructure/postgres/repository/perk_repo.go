package repository

import (
	"errors"
	"fmt"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/mappers"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPerkRepository struct {
	DB *gorm.DB
}

func NewDefaultPerkRepository(db *gorm.DB) *DefaultPerkRepository {
	return &DefaultPerkRepository{DB: db}
}

func (r *DefaultPerkRepository) CreateTemplate(template *domain.PerkTemplate) error {
	templateModel := mappers.ToGORMTemplate(template)
	if err := r.DB.Create(templateModel).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{Resource: "perk template", Key: template.PerkType, Err: err}
		}
		return err
	}
	return nil
}

func (r *DefaultPerkRepository) UpdateTemplate(template *domain.PerkTemplate) error {
	templateModel := mappers.ToGORMTemplate(template)
	return r.DB.Model(&models.PerkTemplateModel{}).
		Where("id = ?", template.ID).
		Select("Name", "DefaultValue", "Category", "IsActive", "UpdatedAt").
		Updates(templateModel).Error
}

func (r *DefaultPerkRepository) DeleteTemplate(templateID string) error {
	return r.DB.Delete(&models.PerkTemplateModel{}, "id = ?", templateID).Error
}

func (r *DefaultPerkRepository) GetTemplateByID(templateID string) (*domain.PerkTemplate, error) {
	var templateModel models.PerkTemplateModel
	if err := r.DB.First(&templateModel, "id = ?", templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("perk template %s not found", templateID)
		}
		return nil, err
	}
	return mappers.ToDomainTemplate(&templateModel), nil
}

func (r *DefaultPerkRepository) GetActiveDefaultTemplates() ([]*domain.PerkTemplate, error) {
	var templateModels []models.PerkTemplateModel
	if err := r.DB.
		Where("is_active = ? AND is_system_default = ?", true, true).
		Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*domain.PerkTemplate, len(templateModels))
	for i, templateModel := range templateModels {
		templates[i] = mappers.ToDomainTemplate(&templateModel)
	}
	return templates, nil
}

func (r *DefaultPerkRepository) GetTemplates(page, limit int) ([]*domain.PerkTemplate, int64, error) {
	var total int64
	if err := r.DB.Model(&models.PerkTemplateModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count perk templates: %w", err)
	}

	if page < 1 {
		page = 1
	}
	var templateModels []models.PerkTemplateModel
	if err := r.DB.
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&templateModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find perk templates: %w", err)
	}

	templates := make([]*domain.PerkTemplate, len(templateModels))
	for i, templateModel := range templateModels {
		templates[i] = mappers.ToDomainTemplate(&templateModel)
	}
	return templates, total, nil
}

func (r *DefaultPerkRepository) CreateCustomization(customization *domain.ClinicPerkCustomization) error {
	customizationModel := mappers.ToGORMCustomization(customization)
	if err := r.DB.Create(customizationModel).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{
				Resource: "clinic perk customization",
				Key:      customization.ClinicID + "/" + customization.TemplateID,
				Err:      err,
			}
		}
		return err
	}
	return nil
}

func (r *DefaultPerkRepository) UpdateCustomization(customization *domain.ClinicPerkCustomization) error {
	customizationModel := mappers.ToGORMCustomization(customization)
	return r.DB.Model(&models.ClinicPerkCustomizationModel{}).
		Where("id = ?", customization.ID).
		Select("CustomName", "CustomValue", "IsEnabled", "RedemptionLimit", "ValidFrom", "ValidUntil", "UpdatedAt").
		Updates(customizationModel).Error
}

func (r *DefaultPerkRepository) GetCustomizationsByClinic(clinicID string) ([]*domain.ClinicPerkCustomization, error) {
	var customizationModels []models.ClinicPerkCustomizationModel
	if err := r.DB.
		Where("clinic_id = ?", clinicID).
		Find(&customizationModels).Error; err != nil {
		return nil, err
	}

	customizations := make([]*domain.ClinicPerkCustomization, len(customizationModels))
	for i, customizationModel := range customizationModels {
		customizations[i] = mappers.ToDomainCustomization(&customizationModel)
	}
	return customizations, nil
}

// GetCustomization returns nil for a (clinic, template) pair that has no
// row yet; the mirror pass treats that as "still to create".
func (r *DefaultPerkRepository) GetCustomization(clinicID, templateID string) (*domain.ClinicPerkCustomization, error) {
	var customizationModel models.ClinicPerkCustomizationModel
	if err := r.DB.
		First(&customizationModel, "clinic_id = ? AND template_id = ?", clinicID, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainCustomization(&customizationModel), nil
}

func (r *DefaultPerkRepository) CreateCardPerks(perks []*domain.CardPerk) error {
	if len(perks) == 0 {
		return nil
	}
	perkModels := make([]*models.CardPerkModel, len(perks))
	for i, perk := range perks {
		perkModels[i] = mappers.ToGORMCardPerk(perk)
	}
	if err := r.DB.Create(&perkModels).Error; err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{Resource: "card perk", Key: perks[0].CardID, Err: err}
		}
		return err
	}
	return nil
}

func (r *DefaultPerkRepository) GetCardPerks(cardID string) ([]*domain.CardPerk, error) {
	var perkModels []models.CardPerkModel
	if err := r.DB.
		Where("card_id = ?", cardID).
		Order("perk_type ASC").
		Find(&perkModels).Error; err != nil {
		return nil, err
	}

	perks := make([]*domain.CardPerk, len(perkModels))
	for i, perkModel := range perkModels {
		perks[i] = mappers.ToDomainCardPerk(&perkModel)
	}
	return perks, nil
}

func (r *DefaultPerkRepository) UpdateCardPerk(perk *domain.CardPerk) error {
	perkModel := mappers.ToGORMCardPerk(perk)
	return r.DB.Model(&models.CardPerkModel{}).
		Where("id = ?", perk.ID).
		Select("Claimed", "ClaimedBy", "ClaimedAt", "UpdatedAt").
		Updates(perkModel).Error
}

// ResetClaims clears claim state on deactivation: perks survive, claims do not.
func (r *DefaultPerkRepository) ResetClaims(cardID string) error {
	return r.DB.Model(&models.CardPerkModel{}).
		Where("card_id = ?", cardID).
		Updates(map[string]any{"claimed": false, "claimed_by": "", "claimed_at": nil}).Error
}

func (r *DefaultPerkRepository) DeleteCardPerks(cardID string) error {
	return r.DB.Delete(&models.CardPerkModel{}, "card_id = ?", cardID).Error
}

func (r *DefaultPerkRepository) CountClaimed() (int64, error) {
	var count int64
	err := r.DB.Model(&models.CardPerkModel{}).Where("claimed = ?", true).Count(&count).Error
	return count, err
}
