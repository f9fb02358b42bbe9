package perkdto

import "time"

type CreateTemplateInput struct {
	PerkType        string
	Name            string
	DefaultValue    float64
	Category        string
	IsSystemDefault bool
	CreatedBy       string
}

type CustomizeInput struct {
	ClinicID        string
	TemplateID      string
	CustomName      string
	CustomValue     float64
	IsEnabled       bool
	RedemptionLimit int
	ValidFrom       *time.Time
	ValidUntil      *time.Time
}

type ClaimPerkInput struct {
	CardID    string
	PerkType  string
	ClaimedBy string
}
