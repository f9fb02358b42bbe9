package models

import "time"

type PerkTemplateModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	PerkType        string `gorm:"uniqueIndex:idx_perk_type;not null"`
	Name            string
	DefaultValue    float64
	Category        string
	IsActive        bool `gorm:"index:idx_template_active"`
	IsSystemDefault bool
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ClinicPerkCustomizationModel struct {
	ID              string             `gorm:"primaryKey;type:uuid"`
	ClinicID        string             `gorm:"type:uuid;uniqueIndex:idx_clinic_template,priority:1;not null"`
	TemplateID      string             `gorm:"type:uuid;uniqueIndex:idx_clinic_template,priority:2;not null"`
	Template        *PerkTemplateModel `gorm:"foreignKey:TemplateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CustomName      string
	CustomValue     float64
	IsEnabled       bool
	RedemptionLimit int
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CardPerkModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CardID    string `gorm:"type:uuid;uniqueIndex:idx_card_perk,priority:1;index:idx_cardperk_card;not null"`
	PerkType  string `gorm:"uniqueIndex:idx_card_perk,priority:2;not null"`
	Name      string
	Value     float64
	Claimed   bool
	ClaimedBy string
	ClaimedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
