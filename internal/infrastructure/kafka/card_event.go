package publisher

import "time"

// CardEvent mirrors one successful card mutation to interested consumers
// (reporting, downstream caches). Delivery is best effort.
type CardEvent struct {
	CardID      string    `json:"card_id"`
	Sequence    int       `json:"sequence"`
	ControlCode string    `json:"control_code"`
	Action      string    `json:"action"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ClinicID    string    `json:"clinic_id,omitempty"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// VersionEvent announces a component version bump.
type VersionEvent struct {
	Component   string    `json:"component"`
	Version     int64     `json:"version"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
