package domain

type CardRepository interface {
	// CreateCards inserts one chunk of generated cards. Uniqueness
	// violations must come back as *ConflictError.
	CreateCards(cards []*Card) error
	GetCardByID(cardID string) (*Card, error)
	GetCardByCode(canonical string) (*Card, error)
	GetCardBySequence(seq int) (*Card, error)
	GetCardsInRange(start, end int) ([]*Card, error)
	GetCardsByBatch(batchID string, page, limit int) ([]*Card, int64, error)
	GetCardsByClinic(clinicID string, page, limit int) ([]*Card, int64, error)

	// SaveTransition persists a lifecycle transition and its history row
	// in one transaction.
	SaveTransition(card *Card, entry *AssignmentHistory) error
	// SaveCodeChange persists a code/field change and its audit row
	// in one transaction.
	SaveCodeChange(card *Card, entry *CardCodeHistory) error

	NextSequence() (int, error)
	CountByStatus(status CardStatus) (int64, error)
	CountByClinic(clinicID string) (int64, error)
}

type HistoryRepository interface {
	// AppendAssignment records an audit row that is not tied to a card
	// mutation, such as a same-clinic re-assign.
	AppendAssignment(entry *AssignmentHistory) error
	GetAssignmentHistory(cardID string) ([]*AssignmentHistory, error)
	GetCodeHistory(cardID string) ([]*CardCodeHistory, error)
}
