package domain

type PerkRepository interface {
	CreateTemplate(template *PerkTemplate) error
	UpdateTemplate(template *PerkTemplate) error
	DeleteTemplate(templateID string) error
	GetTemplateByID(templateID string) (*PerkTemplate, error)
	GetActiveDefaultTemplates() ([]*PerkTemplate, error)
	GetTemplates(page, limit int) ([]*PerkTemplate, int64, error)

	// CreateCustomization must surface the (clinic, template) uniqueness
	// constraint as *ConflictError.
	CreateCustomization(customization *ClinicPerkCustomization) error
	UpdateCustomization(customization *ClinicPerkCustomization) error
	GetCustomizationsByClinic(clinicID string) ([]*ClinicPerkCustomization, error)
	GetCustomization(clinicID, templateID string) (*ClinicPerkCustomization, error)

	CreateCardPerks(perks []*CardPerk) error
	GetCardPerks(cardID string) ([]*CardPerk, error)
	UpdateCardPerk(perk *CardPerk) error
	ResetClaims(cardID string) error
	DeleteCardPerks(cardID string) error
	CountClaimed() (int64, error)
}
