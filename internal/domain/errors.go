package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCardNotFound       = errors.New("card not found")
	ErrClinicNotFound     = errors.New("clinic not found")
	ErrBatchNotFound      = errors.New("batch not found")
	ErrClinicInactive     = errors.New("clinic is not active")
	ErrBatchHasCards      = errors.New("batch still owns cards")
	ErrTemplateImmutable  = errors.New("system default template cannot be modified")
	ErrPerkAlreadyClaimed = errors.New("perk already claimed")
	ErrReassignRejected   = errors.New("card already assigned to a different clinic")
	ErrBatchComplete      = errors.New("batch already fully generated")
)

// ValidationError reports malformed caller input. Always recoverable,
// never leaves partial state behind.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ConflictError surfaces a storage uniqueness violation. The caller should
// regenerate with a fresh candidate rather than retry the same value.
type ConflictError struct {
	Resource string
	Key      string
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict on %q: %v", e.Resource, e.Key, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// PartialBatchError reports a bulk insert that stopped partway. Successful
// chunks are kept; the caller decides whether to resume the remainder.
type PartialBatchError struct {
	BatchID   string
	Requested int
	Inserted  int
	Err       error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch %s partially generated: %d/%d inserted: %v", e.BatchID, e.Inserted, e.Requested, e.Err)
}

func (e *PartialBatchError) Unwrap() error { return e.Err }

// InvariantViolation rejects an illegal state transition before any write.
type InvariantViolation struct {
	CardID string
	From   CardStatus
	To     CardStatus
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("card %s: %s -> %s rejected: %s", e.CardID, e.From, e.To, e.Reason)
}

// RangeMismatchError reports a range assignment that found fewer cards
// than the inclusive interval promises.
type RangeMismatchError struct {
	Start    int
	End      int
	Expected int
	Found    int
}

func (e *RangeMismatchError) Error() string {
	return fmt.Sprintf("range [%d,%d]: expected %d cards, found %d", e.Start, e.End, e.Expected, e.Found)
}
