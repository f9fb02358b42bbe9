package mappers

import (
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
)

func ToDomainTemplate(model *models.PerkTemplateModel) *domain.PerkTemplate {
	return &domain.PerkTemplate{
		ID:              model.ID,
		PerkType:        model.PerkType,
		Name:            model.Name,
		DefaultValue:    model.DefaultValue,
		Category:        model.Category,
		IsActive:        model.IsActive,
		IsSystemDefault: model.IsSystemDefault,
		CreatedBy:       model.CreatedBy,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMTemplate(template *domain.PerkTemplate) *models.PerkTemplateModel {
	return &models.PerkTemplateModel{
		ID:              template.ID,
		PerkType:        template.PerkType,
		Name:            template.Name,
		DefaultValue:    template.DefaultValue,
		Category:        template.Category,
		IsActive:        template.IsActive,
		IsSystemDefault: template.IsSystemDefault,
		CreatedBy:       template.CreatedBy,
		CreatedAt:       template.CreatedAt,
		UpdatedAt:       template.UpdatedAt,
	}
}

func ToDomainCustomization(model *models.ClinicPerkCustomizationModel) *domain.ClinicPerkCustomization {
	return &domain.ClinicPerkCustomization{
		ID:              model.ID,
		ClinicID:        model.ClinicID,
		TemplateID:      model.TemplateID,
		CustomName:      model.CustomName,
		CustomValue:     model.CustomValue,
		IsEnabled:       model.IsEnabled,
		RedemptionLimit: model.RedemptionLimit,
		ValidFrom:       model.ValidFrom,
		ValidUntil:      model.ValidUntil,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMCustomization(customization *domain.ClinicPerkCustomization) *models.ClinicPerkCustomizationModel {
	return &models.ClinicPerkCustomizationModel{
		ID:              customization.ID,
		ClinicID:        customization.ClinicID,
		TemplateID:      customization.TemplateID,
		CustomName:      customization.CustomName,
		CustomValue:     customization.CustomValue,
		IsEnabled:       customization.IsEnabled,
		RedemptionLimit: customization.RedemptionLimit,
		ValidFrom:       customization.ValidFrom,
		ValidUntil:      customization.ValidUntil,
		CreatedAt:       customization.CreatedAt,
		UpdatedAt:       customization.UpdatedAt,
	}
}

func ToDomainCardPerk(model *models.CardPerkModel) *domain.CardPerk {
	return &domain.CardPerk{
		ID:        model.ID,
		CardID:    model.CardID,
		PerkType:  model.PerkType,
		Name:      model.Name,
		Value:     model.Value,
		Claimed:   model.Claimed,
		ClaimedBy: model.ClaimedBy,
		ClaimedAt: model.ClaimedAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMCardPerk(perk *domain.CardPerk) *models.CardPerkModel {
	return &models.CardPerkModel{
		ID:        perk.ID,
		CardID:    perk.CardID,
		PerkType:  perk.PerkType,
		Name:      perk.Name,
		Value:     perk.Value,
		Claimed:   perk.Claimed,
		ClaimedBy: perk.ClaimedBy,
		ClaimedAt: perk.ClaimedAt,
		CreatedAt: perk.CreatedAt,
		UpdatedAt: perk.UpdatedAt,
	}
}
