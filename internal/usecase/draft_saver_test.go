package usecase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/repository"
	"github.com/dentalink/loyalty-card-service/internal/usecase"
)

// countingDrafts records every save that reaches the draft usecase.
type countingDrafts struct {
	usecase.DraftUsecase
	mu     sync.Mutex
	saves  int
	states []map[string]any
}

func (c *countingDrafts) SaveDraft(userID, component string, state map[string]any) error {
	c.mu.Lock()
	c.saves++
	c.states = append(c.states, state)
	c.mu.Unlock()
	return c.DraftUsecase.SaveDraft(userID, component, state)
}

func (c *countingDrafts) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func newDraftFixture(t *testing.T) (*countingDrafts, usecase.DraftUsecase) {
	t.Helper()
	db := newTestDB(t)
	inner := usecase.NewDefaultDraftUsecase(repository.NewDefaultDraftRepository(db), time.Hour, 30*time.Millisecond, nil)
	return &countingDrafts{DraftUsecase: inner}, inner
}

func TestDraftSaverCollapsesBursts(t *testing.T) {
	counting, inner := newDraftFixture(t)
	saver := usecase.NewDraftSaver(counting, "user-1", "card-form", 30*time.Millisecond)

	for i := 0; i < 10; i++ {
		saver.Update(map[string]any{"count": float64(i)})
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return counting.count() == 1 },
		time.Second, 5*time.Millisecond)
	require.NoError(t, saver.LastError())

	// Only the final state reached storage.
	draft, err := inner.GetDraft("user-1", "card-form")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, float64(9), draft.State["count"])
}

func TestDraftSaverFlush(t *testing.T) {
	counting, inner := newDraftFixture(t)
	saver := usecase.NewDraftSaver(counting, "user-1", "card-form", time.Hour)

	saver.Update(map[string]any{"note": "pending"})
	require.NoError(t, saver.Flush())
	assert.Equal(t, 1, counting.count())

	// Nothing pending: flush is a no-op.
	require.NoError(t, saver.Flush())
	assert.Equal(t, 1, counting.count())

	draft, err := inner.GetDraft("user-1", "card-form")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "pending", draft.State["note"])
}

func TestDraftSaverStopRejectsFurtherUpdates(t *testing.T) {
	counting, _ := newDraftFixture(t)
	saver := usecase.NewDraftSaver(counting, "user-1", "card-form", time.Hour)

	saver.Update(map[string]any{"a": true})
	require.NoError(t, saver.Stop())
	assert.Equal(t, 1, counting.count())

	saver.Update(map[string]any{"b": true})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, counting.count())
}

func TestDraftLifecycle(t *testing.T) {
	db := newTestDB(t)
	drafts := usecase.NewDefaultDraftUsecase(repository.NewDefaultDraftRepository(db), 50*time.Millisecond, 30*time.Millisecond, nil)

	require.NoError(t, drafts.SaveDraft("user-1", "card-form", map[string]any{"v": float64(1)}))
	require.NoError(t, drafts.SaveDraft("user-1", "card-form", map[string]any{"v": float64(2)}))

	// Latest save wins.
	draft, err := drafts.GetDraft("user-1", "card-form")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, float64(2), draft.State["v"])

	// Distinct components stay independent.
	require.NoError(t, drafts.SaveDraft("user-1", "perk-form", map[string]any{"v": float64(9)}))
	other, err := drafts.GetDraft("user-1", "perk-form")
	require.NoError(t, err)
	require.NotNil(t, other)

	require.NoError(t, drafts.DiscardDraft("user-1", "perk-form"))
	gone, err := drafts.GetDraft("user-1", "perk-form")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Past the TTL the draft is invisible and sweepable.
	time.Sleep(60 * time.Millisecond)
	expired, err := drafts.GetDraft("user-1", "card-form")
	require.NoError(t, err)
	assert.Nil(t, expired)

	swept, err := drafts.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	err = drafts.SaveDraft("", "card-form", nil)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNewSaverUsesConfiguredDelay(t *testing.T) {
	db := newTestDB(t)
	drafts := usecase.NewDefaultDraftUsecase(repository.NewDefaultDraftRepository(db), time.Hour, 30*time.Millisecond, nil)

	saver := drafts.NewSaver("user-1", "card-form")
	defer saver.Stop()

	saver.Update(map[string]any{"v": float64(1)})
	saver.Update(map[string]any{"v": float64(2)})

	// Nothing lands before the debounce window elapses.
	draft, err := drafts.GetDraft("user-1", "card-form")
	require.NoError(t, err)
	assert.Nil(t, draft)

	require.Eventually(t, func() bool {
		draft, err := drafts.GetDraft("user-1", "card-form")
		return err == nil && draft != nil && draft.State["v"] == float64(2)
	}, time.Second, 5*time.Millisecond)
}

func TestLoadMergedDraft(t *testing.T) {
	db := newTestDB(t)
	drafts := usecase.NewDefaultDraftUsecase(repository.NewDefaultDraftRepository(db), time.Hour, 30*time.Millisecond, nil)
	defaults := map[string]any{"mode": "auto", "count": float64(1), "prefix": "MO"}

	// No draft yet: defaults come back as-is.
	state, err := drafts.LoadMerged("user-1", "card-form", defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, state)

	require.NoError(t, drafts.SaveDraft("user-1", "card-form", map[string]any{
		"count": float64(50),
		"notes": "rush order",
	}))

	// Saved keys win, untouched defaults survive.
	state, err = drafts.LoadMerged("user-1", "card-form", defaults)
	require.NoError(t, err)
	assert.Equal(t, float64(50), state["count"])
	assert.Equal(t, "rush order", state["notes"])
	assert.Equal(t, "auto", state["mode"])
	assert.Equal(t, "MO", state["prefix"])

	// The defaults map itself is never mutated.
	assert.Equal(t, float64(1), defaults["count"])
}
