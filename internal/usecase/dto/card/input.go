package carddto

import "github.com/dentalink/loyalty-card-service/internal/domain"

type GenerateBatchInput struct {
	Mode domain.GenerationMode
	// Manual mode only.
	CustomBatchNumber   string
	CustomControlNumber string
	CustomPasscode      string
	// Two-letter region prefix embedded in the batch number.
	LocationPrefix string
	// Three-letter location code embedded in passcodes.
	LocationCode string
	Count        int
	// Range mode only: inclusive sequence interval.
	RangeStart int
	RangeEnd   int
	CreatedBy  string
}

type AssignCardInput struct {
	CardID   string
	ClinicID string
	Actor    string
}

type AssignRangeInput struct {
	Start    int
	End      int
	ClinicID string
	Actor    string
}

type ActivateCardInput struct {
	CardID       string
	LocationCode string
	ClinicCode   string
	Actor        string
}

type UpdateCardCodeInput struct {
	CardID string
	// Any accepted surface form; normalized before storage.
	NewControlNumber string
	Actor            string
}
