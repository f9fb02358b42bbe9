package card

import (
	"log/slog"

	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
	"github.com/google/uuid"
)

// ActivateCard moves an assigned or suspended card to ACTIVATED, stamps
// its validity window and grants the default perk set. Activating an
// already activated card only tops up missing perks; claimed ones are
// never touched.
func (uc *DefaultCardUsecase) ActivateCard(input carddto.ActivateCardInput) (*domain.Card, error) {
	card, err := uc.cardRepo.GetCardByID(input.CardID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	switch card.EffectiveStatus(now) {
	case domain.StatusAssigned, domain.StatusSuspended:
	case domain.StatusActivated:
		if _, err := uc.perks.GrantDefaultPerks(card.ID); err != nil {
			return nil, err
		}
		return card, nil
	default:
		err := &domain.InvariantViolation{
			CardID: card.ID,
			From:   card.Status,
			To:     domain.StatusActivated,
			Reason: "card must be assigned before activation",
		}
		uc.countErr("activate", err)
		return nil, err
	}

	oldStatus := card.Status
	expires := now.Add(uc.lifeCfg.ActivationTTL)

	card.Status = domain.StatusActivated
	card.ActivatedAt = &now
	card.ExpiresAt = &expires
	card.UpdatedAt = now
	if input.LocationCode != "" {
		card.LocationCode = input.LocationCode
	}
	if input.ClinicCode != "" {
		card.ClinicCode = input.ClinicCode
	}

	entry := &domain.AssignmentHistory{
		ID:          uuid.New().String(),
		CardID:      card.ID,
		Action:      domain.ActionActivated,
		OldStatus:   oldStatus,
		NewStatus:   card.Status,
		OldClinicID: card.AssignedClinicID,
		NewClinicID: card.AssignedClinicID,
		Actor:       input.Actor,
		CreatedAt:   now,
	}
	if err := uc.cardRepo.SaveTransition(card, entry); err != nil {
		return nil, err
	}

	if _, err := uc.perks.GrantDefaultPerks(card.ID); err != nil {
		// The activation itself is committed; perks can be re-granted.
		slog.Warn("failed to grant default perks",
			slog.String("card_id", card.ID),
			slog.Any("error", err))
	}

	if uc.metrics != nil {
		uc.metrics.CardsActivatedTotal.WithLabelValues(card.ClinicCode).Inc()
	}
	uc.versions.Bump(domain.ComponentCards, "card activated: "+card.Code.SequenceRef())
	uc.publishCardEvent(card, string(domain.ActionActivated), oldStatus, input.Actor, card.AssignedClinicID)
	return card, nil
}

// DeactivateCard suspends an activated card. Suspension is reversible
// through ActivateCard.
func (uc *DefaultCardUsecase) DeactivateCard(cardID, actor string) (*domain.Card, error) {
	card, err := uc.cardRepo.GetCardByID(cardID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if card.EffectiveStatus(now) != domain.StatusActivated {
		err := &domain.InvariantViolation{
			CardID: card.ID,
			From:   card.Status,
			To:     domain.StatusSuspended,
			Reason: "only activated cards can be suspended",
		}
		uc.countErr("deactivate", err)
		return nil, err
	}

	oldStatus := card.Status
	card.Status = domain.StatusSuspended
	card.ActivatedAt = nil
	card.ExpiresAt = nil
	card.UpdatedAt = now

	entry := &domain.AssignmentHistory{
		ID:          uuid.New().String(),
		CardID:      card.ID,
		Action:      domain.ActionDeactivated,
		OldStatus:   oldStatus,
		NewStatus:   card.Status,
		OldClinicID: card.AssignedClinicID,
		NewClinicID: card.AssignedClinicID,
		Actor:       actor,
		CreatedAt:   now,
	}
	if err := uc.cardRepo.SaveTransition(card, entry); err != nil {
		return nil, err
	}

	// Perks stay on the card but their claims are rewound, so a later
	// reactivation starts from a clean slate.
	if err := uc.perks.ResetPerkClaims(card.ID); err != nil {
		slog.Warn("failed to reset perk claims on suspension",
			"card_id", card.ID, "error", err.Error())
	}

	uc.versions.Bump(domain.ComponentCards, "card suspended: "+card.Code.SequenceRef())
	uc.publishCardEvent(card, string(domain.ActionDeactivated), oldStatus, actor, card.AssignedClinicID)
	return card, nil
}

// ResetCard returns a card to factory state: unassigned, no validity
// window, no perks. The audit trail keeps the full prior life.
func (uc *DefaultCardUsecase) ResetCard(cardID, actor string) (*domain.Card, error) {
	card, err := uc.cardRepo.GetCardByID(cardID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	oldStatus := card.Status
	oldClinic := card.AssignedClinicID

	card.Status = domain.StatusUnassigned
	card.AssignedClinicID = ""
	card.ClinicCode = ""
	card.AssignedAt = nil
	card.ActivatedAt = nil
	card.ExpiresAt = nil
	card.UpdatedAt = now

	entry := &domain.AssignmentHistory{
		ID:          uuid.New().String(),
		CardID:      card.ID,
		Action:      domain.ActionReset,
		OldStatus:   oldStatus,
		NewStatus:   card.Status,
		OldClinicID: oldClinic,
		Actor:       actor,
		CreatedAt:   now,
	}
	if err := uc.cardRepo.SaveTransition(card, entry); err != nil {
		return nil, err
	}

	if err := uc.perks.RemoveCardPerks(card.ID); err != nil {
		slog.Warn("failed to remove card perks on reset",
			slog.String("card_id", card.ID),
			slog.Any("error", err))
	}

	if uc.metrics != nil {
		uc.metrics.CardsResetTotal.Inc()
	}
	uc.versions.Bump(domain.ComponentCards, "card reset: "+card.Code.SequenceRef())
	uc.publishCardEvent(card, string(domain.ActionReset), oldStatus, actor, oldClinic)
	return card, nil
}

// UpdateCardCode replaces the card's control number with a new one. Any
// accepted surface form is taken; storage keeps only the canonical key,
// and the old value survives in the code history.
func (uc *DefaultCardUsecase) UpdateCardCode(input carddto.UpdateCardCodeInput) (*domain.Card, error) {
	card, err := uc.cardRepo.GetCardByID(input.CardID)
	if err != nil {
		return nil, err
	}

	canonical, err := codegen.Normalize(input.NewControlNumber, codegen.CodeControl)
	if err != nil {
		return nil, err
	}
	if len(canonical) == codegen.SequenceWidth && isAllDigits(canonical) {
		return nil, &domain.ValidationError{
			Field:  "new_control_number",
			Value:  input.NewControlNumber,
			Reason: "a sequence reference cannot replace a control number",
		}
	}
	if canonical == card.Code.Canonical {
		return card, nil
	}

	now := uc.now()
	oldCode := card.Code.Canonical
	card.Code.Canonical = canonical
	card.UpdatedAt = now

	entry := &domain.CardCodeHistory{
		ID:        uuid.New().String(),
		CardID:    card.ID,
		Action:    domain.ActionCodeChanged,
		Field:     "control_number",
		OldValue:  oldCode,
		NewValue:  canonical,
		Actor:     input.Actor,
		CreatedAt: now,
	}
	if err := uc.cardRepo.SaveCodeChange(card, entry); err != nil {
		return nil, err
	}

	uc.versions.Bump(domain.ComponentCodes, "control number changed: "+card.Code.SequenceRef())
	return card, nil
}
