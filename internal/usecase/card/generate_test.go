package card

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
)

func TestGenerateBatchAuto(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeAuto,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		Count:          5,
		CreatedBy:      "admin",
	})
	require.NoError(t, err)
	require.Len(t, out.Cards, 5)
	assert.True(t, out.Batch.Complete())
	assert.Equal(t, 5, out.Batch.InsertedCount)

	controlShape := regexp.MustCompile(`^MO-C\d{6}[A-Z]{2}-\d{3}$`)
	passcodeShape := regexp.MustCompile(`^MOC\d{6}$`)
	seen := map[string]bool{}
	for i, c := range out.Cards {
		assert.Equal(t, domain.StatusUnassigned, c.Status)
		assert.Equal(t, i+1, c.Code.Sequence)
		assert.Regexp(t, controlShape, c.Code.Unified())
		assert.Regexp(t, passcodeShape, c.Passcode)
		assert.False(t, seen[c.Code.Canonical], "duplicate canonical code %s", c.Code.Canonical)
		seen[c.Code.Canonical] = true
	}
}

func TestGenerateBatchRange(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeRange,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		RangeStart:     101,
		RangeEnd:       110,
		CreatedBy:      "admin",
	})
	require.NoError(t, err)
	require.Len(t, out.Cards, 10)
	assert.Equal(t, "MO-R0010100110", out.Batch.BatchNumber)
	assert.Equal(t, 101, out.Cards[0].Code.Sequence)
	assert.Equal(t, 110, out.Cards[9].Code.Sequence)
}

func TestGenerateBatchRangeCollision(t *testing.T) {
	env := newTestEnv(t)

	input := carddto.GenerateBatchInput{
		Mode:           domain.ModeRange,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		RangeStart:     1,
		RangeEnd:       5,
	}
	_, err := env.cards.GenerateBatch(input)
	require.NoError(t, err)

	// Same interval again: the batch number itself collides.
	_, err = env.cards.GenerateBatch(input)
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestGenerateBatchManual(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:                domain.ModeManual,
		CustomBatchNumber:   "MO-B000123AB",
		CustomControlNumber: "MO-C000123AB-001",
		CustomPasscode:      "MOC123456",
		LocationPrefix:      "MO",
		LocationCode:        "MOC",
		Count:               1,
	})
	require.NoError(t, err)
	require.Len(t, out.Cards, 1)
	assert.Equal(t, "MOC000123AB001", out.Cards[0].Code.Canonical)
	assert.Equal(t, "MOC123456", out.Cards[0].Passcode)

	_, err = env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeManual,
		LocationPrefix: "MO",
		Count:          3,
	})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGenerateBatchSequenceCap(t *testing.T) {
	env := newTestEnv(t)
	env.cards.genCfg.MaxSequence = 10

	_, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeAuto,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		Count:          11,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "count", verr.Field)
}

func TestResumeBatch(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeRange,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		RangeStart:     1,
		RangeEnd:       6,
	})
	require.NoError(t, err)

	// Pretend the last attempt died after two cards.
	require.NoError(t, env.db.Exec(
		"DELETE FROM card_models WHERE sequence_number > 2").Error)
	require.NoError(t, env.batches.UpdateInsertedCount(out.Batch.ID, 2))

	resumed, err := env.cards.ResumeBatch(out.Batch.ID)
	require.NoError(t, err)
	require.Len(t, resumed.Cards, 4)
	assert.Equal(t, 3, resumed.Cards[0].Code.Sequence)
	assert.True(t, resumed.Batch.Complete())

	_, err = env.cards.ResumeBatch(out.Batch.ID)
	assert.ErrorIs(t, err, domain.ErrBatchComplete)
}

// chunkFailingRepo passes writes through until the configured chunk
// insert, which fails.
type chunkFailingRepo struct {
	domain.CardRepository
	failOn int
	calls  int
}

func (r *chunkFailingRepo) CreateCards(cards []*domain.Card) error {
	r.calls++
	if r.calls == r.failOn {
		return errors.New("connection reset during bulk insert")
	}
	return r.CardRepository.CreateCards(cards)
}

func TestGenerateBatchPartialFailureKeepsCommittedChunks(t *testing.T) {
	env := newTestEnv(t)
	env.cards.genCfg.ChunkSize = 3
	real := env.cards.cardRepo
	env.cards.cardRepo = &chunkFailingRepo{CardRepository: real, failOn: 3}

	_, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeAuto,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		Count:          10,
		CreatedBy:      "admin",
	})
	var partial *domain.PartialBatchError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 10, partial.Requested)
	assert.Equal(t, 6, partial.Inserted)

	// The two committed chunks stay on disk.
	kept, _, err := env.cards.GetCardsByBatch(partial.BatchID, 1, 100)
	require.NoError(t, err)
	require.Len(t, kept, 6)

	// With the fault gone the batch resumes from the recorded count.
	env.cards.cardRepo = real
	resumed, err := env.cards.ResumeBatch(partial.BatchID)
	require.NoError(t, err)
	require.Len(t, resumed.Cards, 4)
	assert.Equal(t, 10, resumed.Batch.InsertedCount)
	assert.True(t, resumed.Batch.Complete())
}

func TestDeleteBatchRefusedWhileCardsExist(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.cards.GenerateBatch(carddto.GenerateBatchInput{
		Mode:           domain.ModeAuto,
		LocationPrefix: "MO",
		LocationCode:   "MOC",
		Count:          2,
	})
	require.NoError(t, err)

	err = env.cards.DeleteBatch(out.Batch.ID)
	assert.ErrorIs(t, err, domain.ErrBatchHasCards)

	require.NoError(t, env.db.Exec("DELETE FROM card_models").Error)
	require.NoError(t, env.cards.DeleteBatch(out.Batch.ID))
}
