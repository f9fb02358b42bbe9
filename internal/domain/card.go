package domain

import (
	"fmt"
	"strings"
	"time"
)

type CardStatus string

const (
	StatusUnassigned CardStatus = "UNASSIGNED"
	StatusAssigned   CardStatus = "ASSIGNED"
	StatusActivated  CardStatus = "ACTIVATED"
	StatusSuspended  CardStatus = "SUSPENDED"
	// StatusExpired is derived from ExpiresAt on read, never written.
	StatusExpired CardStatus = "EXPIRED"
)

// legacyStatusLabels maps status names that still exist in imported data
// to the canonical enum. Synonyms never leave the boundary.
var legacyStatusLabels = map[string]CardStatus{
	"unactivated": StatusUnassigned,
	"unassigned":  StatusUnassigned,
	"assigned":    StatusAssigned,
	"activated":   StatusActivated,
	"active":      StatusActivated,
	"suspended":   StatusSuspended,
	"inactive":    StatusSuspended,
	"expired":     StatusExpired,
}

func ParseCardStatus(raw string) (CardStatus, error) {
	if s, ok := legacyStatusLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, nil
	}
	switch CardStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusUnassigned, StatusAssigned, StatusActivated, StatusSuspended, StatusExpired:
		return CardStatus(strings.ToUpper(strings.TrimSpace(raw))), nil
	}
	return "", fmt.Errorf("unknown card status %q", raw)
}

type Card struct {
	ID               string
	Code             CardCode
	Passcode         string
	LocationCode     string
	ClinicCode       string
	Status           CardStatus
	BatchID          string
	AssignedClinicID string
	AssignedAt       *time.Time
	ActivatedAt      *time.Time
	ExpiresAt        *time.Time
	MigrationVersion int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EffectiveStatus folds the implicit expiry into the stored status.
func (c *Card) EffectiveStatus(now time.Time) CardStatus {
	if c.Status == StatusActivated && c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return StatusExpired
	}
	return c.Status
}

func (c *Card) IsAssigned() bool {
	return c.AssignedClinicID != ""
}
