package card

import (
	"fmt"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	publisher "github.com/dentalink/loyalty-card-service/internal/infrastructure/kafka"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
	"github.com/google/uuid"
)

// AssignCard hands an unassigned card to a clinic. Re-assigning to the
// same clinic leaves the card alone but still appends an audit row;
// re-assigning to a different one follows the
// configured policy: "reject" refuses, "overwrite" records a reassignment.
func (uc *DefaultCardUsecase) AssignCard(input carddto.AssignCardInput) (*domain.Card, error) {
	card, err := uc.cardRepo.GetCardByID(input.CardID)
	if err != nil {
		return nil, err
	}
	clinic, err := uc.clinicRepo.GetClinicByID(input.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic.Status != domain.ClinicActive {
		return nil, domain.ErrClinicInactive
	}

	if err := uc.checkAssignable(card, clinic.ID); err != nil {
		uc.countErr("assign", err)
		return nil, err
	}
	if card.AssignedClinicID == clinic.ID {
		if err := uc.recordSameClinicAssign(card, input.Actor); err != nil {
			return nil, err
		}
		return card, nil
	}

	return uc.assignTo(card, clinic, input.Actor)
}

// AssignRange assigns every card in the inclusive sequence interval to one
// clinic. The whole interval is validated up front; nothing is written
// unless every card is present and assignable. Cards already held by the
// clinic are reported as skipped.
func (uc *DefaultCardUsecase) AssignRange(input carddto.AssignRangeInput) (*carddto.AssignRangeOutput, error) {
	if input.Start < 1 || input.End < input.Start {
		return nil, &domain.ValidationError{Field: "range", Value: fmt.Sprintf("[%d,%d]", input.Start, input.End), Reason: "start must be >= 1 and <= end"}
	}

	clinic, err := uc.clinicRepo.GetClinicByID(input.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic.Status != domain.ClinicActive {
		return nil, domain.ErrClinicInactive
	}

	cards, err := uc.cardRepo.GetCardsInRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}
	expected := input.End - input.Start + 1
	if len(cards) != expected {
		err := &domain.RangeMismatchError{
			Start:    input.Start,
			End:      input.End,
			Expected: expected,
			Found:    len(cards),
		}
		uc.countErr("assign_range", err)
		return nil, err
	}
	for _, c := range cards {
		if err := uc.checkAssignable(c, clinic.ID); err != nil {
			uc.countErr("assign_range", err)
			return nil, err
		}
	}

	out := &carddto.AssignRangeOutput{}
	for _, c := range cards {
		if c.AssignedClinicID == clinic.ID {
			if err := uc.recordSameClinicAssign(c, input.Actor); err != nil {
				return out, err
			}
			out.Skipped = append(out.Skipped, c)
			continue
		}
		assigned, err := uc.assignTo(c, clinic, input.Actor)
		if err != nil {
			return out, err
		}
		out.Assigned = append(out.Assigned, assigned)
	}
	return out, nil
}

// recordSameClinicAssign audits a re-assign to the clinic that already
// holds the card. The card row is untouched, only history grows.
func (uc *DefaultCardUsecase) recordSameClinicAssign(card *domain.Card, actor string) error {
	return uc.historyRepo.AppendAssignment(&domain.AssignmentHistory{
		ID:          uuid.New().String(),
		CardID:      card.ID,
		Action:      domain.ActionAssigned,
		OldStatus:   card.Status,
		NewStatus:   card.Status,
		OldClinicID: card.AssignedClinicID,
		NewClinicID: card.AssignedClinicID,
		Actor:       actor,
		CreatedAt:   uc.now(),
	})
}

// checkAssignable enforces the lifecycle and reassignment rules without
// writing anything.
func (uc *DefaultCardUsecase) checkAssignable(card *domain.Card, clinicID string) error {
	switch card.EffectiveStatus(uc.now()) {
	case domain.StatusUnassigned, domain.StatusAssigned:
	default:
		return &domain.InvariantViolation{
			CardID: card.ID,
			From:   card.Status,
			To:     domain.StatusAssigned,
			Reason: "only unassigned or assigned cards can be assigned",
		}
	}
	if card.IsAssigned() && card.AssignedClinicID != clinicID && uc.lifeCfg.ReassignPolicy != "overwrite" {
		return domain.ErrReassignRejected
	}
	return nil
}

func (uc *DefaultCardUsecase) assignTo(card *domain.Card, clinic *domain.Clinic, actor string) (*domain.Card, error) {
	now := uc.now()
	action := domain.ActionAssigned
	if card.IsAssigned() {
		action = domain.ActionReassigned
	}

	oldStatus := card.Status
	oldClinic := card.AssignedClinicID

	card.Status = domain.StatusAssigned
	card.AssignedClinicID = clinic.ID
	card.ClinicCode = clinic.ClinicCode
	card.AssignedAt = &now
	card.UpdatedAt = now

	entry := &domain.AssignmentHistory{
		ID:          uuid.New().String(),
		CardID:      card.ID,
		Action:      action,
		OldStatus:   oldStatus,
		NewStatus:   card.Status,
		OldClinicID: oldClinic,
		NewClinicID: clinic.ID,
		Actor:       actor,
		CreatedAt:   now,
	}
	if err := uc.cardRepo.SaveTransition(card, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CardsAssignedTotal.WithLabelValues(clinic.ClinicCode).Inc()
	}
	uc.versions.Bump(domain.ComponentCards, "card assigned: "+card.Code.SequenceRef())
	uc.publishCardEvent(card, string(action), oldStatus, actor, clinic.ID)
	return card, nil
}

func (uc *DefaultCardUsecase) publishCardEvent(card *domain.Card, action string, oldStatus domain.CardStatus, actor, clinicID string) {
	if uc.publisher == nil {
		return
	}
	event := publisher.CardEvent{
		CardID:      card.ID,
		Sequence:    card.Code.Sequence,
		ControlCode: card.Code.Unified(),
		Action:      action,
		OldStatus:   string(oldStatus),
		NewStatus:   string(card.Status),
		ClinicID:    clinicID,
		Actor:       actor,
		OccurredAt:  time.Now(),
	}
	// Delivery is best effort; the mutation is already committed.
	_ = uc.publisher.PublishCard(uc.topic, event)
}
