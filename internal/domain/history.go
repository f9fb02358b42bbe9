package domain

import "time"

type HistoryAction string

const (
	ActionAssigned    HistoryAction = "ASSIGNED"
	ActionReassigned  HistoryAction = "REASSIGNED"
	ActionActivated   HistoryAction = "ACTIVATED"
	ActionDeactivated HistoryAction = "DEACTIVATED"
	ActionReset       HistoryAction = "RESET"
	ActionCodeChanged HistoryAction = "CODE_CHANGED"
)

// AssignmentHistory is append-only: one row per lifecycle transition.
type AssignmentHistory struct {
	ID          string
	CardID      string
	Action      HistoryAction
	OldStatus   CardStatus
	NewStatus   CardStatus
	OldClinicID string
	NewClinicID string
	Actor       string
	CreatedAt   time.Time
}

// CardCodeHistory records every code/field change with before/after values.
type CardCodeHistory struct {
	ID        string
	CardID    string
	Action    HistoryAction
	Field     string
	OldValue  string
	NewValue  string
	Actor     string
	CreatedAt time.Time
}
