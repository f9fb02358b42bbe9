package domain

import "time"

// SessionDraft is an autosaved in-progress form state, keyed by
// (user, component). Newer saves supersede older ones; expired drafts
// are invisible to loads and swept by a background task.
type SessionDraft struct {
	ID        string
	UserID    string
	Component string
	State     map[string]any
	SavedAt   time.Time
	ExpiresAt time.Time
}

func (d *SessionDraft) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
