package domain

import "time"

// Component names one logical slice of the system for version tracking.
type Component string

const (
	ComponentCards    Component = "cards"
	ComponentBatches  Component = "batches"
	ComponentPerks    Component = "perks"
	ComponentSettings Component = "settings"
	ComponentCodes    Component = "codes"
)

// SystemVersion holds a monotonically increasing counter per component.
// Every successful mutation to the component's tables bumps it.
type SystemVersion struct {
	Component   Component
	Version     int64
	Description string
	UpdatedAt   time.Time
}

// UpdateNotification is emitted by the reconciler when a remote version
// is strictly greater than the locally known one.
type UpdateNotification struct {
	Component   Component
	OldVersion  int64
	NewVersion  int64
	Description string
	DetectedAt  time.Time
}
