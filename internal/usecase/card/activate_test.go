package card

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
	perkdto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/perk"
)

func (e *testEnv) assignedCard(t *testing.T) (*domain.Card, *domain.Clinic) {
	t.Helper()
	clinic := e.seedClinic(t, "CL01", domain.ClinicActive)
	cards := e.generateCards(t, 1)
	card, err := e.cards.AssignCard(carddto.AssignCardInput{
		CardID:   cards[0].ID,
		ClinicID: clinic.ID,
		Actor:    "admin",
	})
	require.NoError(t, err)
	return card, clinic
}

func TestActivateCard(t *testing.T) {
	env := newTestEnv(t)
	env.seedDefaultTemplate(t, "CLEANING")
	env.seedDefaultTemplate(t, "WHITENING")
	card, _ := env.assignedCard(t)

	activated, err := env.cards.ActivateCard(carddto.ActivateCardInput{
		CardID: card.ID,
		Actor:  "reception",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActivated, activated.Status)
	require.NotNil(t, activated.ActivatedAt)
	require.NotNil(t, activated.ExpiresAt)
	assert.Equal(t, activated.ActivatedAt.Add(24*time.Hour), *activated.ExpiresAt)

	perks, err := env.perks.GetCardPerks(card.ID)
	require.NoError(t, err)
	assert.Len(t, perks, 2)
}

func TestActivateCardTwiceKeepsClaimedPerks(t *testing.T) {
	env := newTestEnv(t)
	env.seedDefaultTemplate(t, "CLEANING")
	card, _ := env.assignedCard(t)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)

	claimed, err := env.perks.ClaimPerk(perkdto.ClaimPerkInput{
		CardID:    card.ID,
		PerkType:  "CLEANING",
		ClaimedBy: "patient-1",
	})
	require.NoError(t, err)
	assert.True(t, claimed.Claimed)

	_, err = env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)

	perks, err := env.perks.GetCardPerks(card.ID)
	require.NoError(t, err)
	require.Len(t, perks, 1)
	assert.True(t, perks[0].Claimed)
}

func TestActivateUnassignedCardRejected(t *testing.T) {
	env := newTestEnv(t)
	cards := env.generateCards(t, 1)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: cards[0].ID})
	var violation *domain.InvariantViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, domain.StatusUnassigned, violation.From)
}

func TestDeactivateAndReactivate(t *testing.T) {
	env := newTestEnv(t)
	card, _ := env.assignedCard(t)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)

	suspended, err := env.cards.DeactivateCard(card.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, suspended.Status)
	assert.Nil(t, suspended.ActivatedAt)
	assert.Nil(t, suspended.ExpiresAt)
	assert.NotEmpty(t, suspended.AssignedClinicID)

	// Suspension is reversible.
	restored, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActivated, restored.Status)

	_, err = env.cards.DeactivateCard(card.ID, "admin")
	require.NoError(t, err)
	_, err = env.cards.DeactivateCard(card.ID, "admin")
	var violation *domain.InvariantViolation
	assert.True(t, errors.As(err, &violation))
}

func TestDeactivateRewindsPerkClaims(t *testing.T) {
	env := newTestEnv(t)
	env.seedDefaultTemplate(t, "CLEANING")
	card, _ := env.assignedCard(t)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)
	_, err = env.perks.ClaimPerk(perkdto.ClaimPerkInput{
		CardID:    card.ID,
		PerkType:  "CLEANING",
		ClaimedBy: "patient-1",
	})
	require.NoError(t, err)

	_, err = env.cards.DeactivateCard(card.ID, "admin")
	require.NoError(t, err)

	// The perk row stays, only the claim is undone.
	perks, err := env.perks.GetCardPerks(card.ID)
	require.NoError(t, err)
	require.Len(t, perks, 1)
	assert.False(t, perks[0].Claimed)
	assert.Nil(t, perks[0].ClaimedAt)
}

func TestResetCard(t *testing.T) {
	env := newTestEnv(t)
	env.seedDefaultTemplate(t, "CLEANING")
	card, clinic := env.assignedCard(t)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)

	reset, err := env.cards.ResetCard(card.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnassigned, reset.Status)
	assert.Empty(t, reset.AssignedClinicID)
	assert.Nil(t, reset.AssignedAt)
	assert.Nil(t, reset.ActivatedAt)
	assert.Nil(t, reset.ExpiresAt)

	perks, err := env.perks.GetCardPerks(card.ID)
	require.NoError(t, err)
	assert.Empty(t, perks)

	history, err := env.cards.GetAssignmentHistory(card.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.ActionReset, history[2].Action)
	assert.Equal(t, clinic.ID, history[2].OldClinicID)
}

func TestExpiredCardCannotBeSuspended(t *testing.T) {
	env := newTestEnv(t)
	card, _ := env.assignedCard(t)

	_, err := env.cards.ActivateCard(carddto.ActivateCardInput{CardID: card.ID})
	require.NoError(t, err)

	// Jump past the validity window.
	env.now = env.now.Add(25 * time.Hour)

	_, err = env.cards.DeactivateCard(card.ID, "admin")
	var violation *domain.InvariantViolation
	require.True(t, errors.As(err, &violation))

	found, err := env.cards.FindCard(card.Code.Unified())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, found.EffectiveStatus(env.now))
}

func TestUpdateCardCode(t *testing.T) {
	env := newTestEnv(t)
	cards := env.generateCards(t, 1)

	updated, err := env.cards.UpdateCardCode(carddto.UpdateCardCodeInput{
		CardID:           cards[0].ID,
		NewControlNumber: "dc 000999 xy 007",
		Actor:            "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "MOC000999XY007", updated.Code.Canonical)

	found, err := env.cards.FindCard("MO-C000999XY-007")
	require.NoError(t, err)
	assert.Equal(t, cards[0].ID, found.ID)

	codeHistory, err := env.cards.GetCodeHistory(cards[0].ID)
	require.NoError(t, err)
	require.Len(t, codeHistory, 1)
	assert.Equal(t, cards[0].Code.Canonical, codeHistory[0].OldValue)
	assert.Equal(t, "MOC000999XY007", codeHistory[0].NewValue)

	_, err = env.cards.UpdateCardCode(carddto.UpdateCardCodeInput{
		CardID:           cards[0].ID,
		NewControlNumber: "00042",
	})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}
