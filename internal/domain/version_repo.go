package domain

type VersionRepository interface {
	// Bump atomically increments the component's counter and stores the
	// change description, returning the new value.
	Bump(component Component, description string) (int64, error)
	Get(component Component) (*SystemVersion, error)
	GetAll() ([]*SystemVersion, error)
}

type DraftRepository interface {
	// SaveDraft upserts on (user, component); newer saves win.
	SaveDraft(draft *SessionDraft) error
	// GetDraft returns nil for missing or expired drafts.
	GetDraft(userID, component string) (*SessionDraft, error)
	DeleteDraft(userID, component string) error
	DeleteExpired() (int64, error)
}
