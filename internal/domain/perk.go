package domain

import "time"

type PerkTemplate struct {
	ID              string
	PerkType        string
	Name            string
	DefaultValue    float64
	Category        string
	IsActive        bool
	IsSystemDefault bool
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClinicPerkCustomization is the per-clinic override of a template.
// One row per (clinic, template) pair, mirrored on template creation.
type ClinicPerkCustomization struct {
	ID              string
	ClinicID        string
	TemplateID      string
	CustomName      string
	CustomValue     float64
	IsEnabled       bool
	RedemptionLimit int
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CardPerk is one perk granted to one card. Created in bulk at activation,
// mutated once when claimed, never re-created for the same (card, perk_type).
type CardPerk struct {
	ID        string
	CardID    string
	PerkType  string
	Name      string
	Value     float64
	Claimed   bool
	ClaimedBy string
	ClaimedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
