package usecase

import (
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

type DraftUsecase interface {
	SaveDraft(userID, component string, state map[string]any) error
	GetDraft(userID, component string) (*domain.SessionDraft, error)
	LoadMerged(userID, component string, defaults map[string]any) (map[string]any, error)
	DiscardDraft(userID, component string) error
	SweepExpired() (int64, error)
}

type DefaultDraftUsecase struct {
	draftRepo domain.DraftRepository
	ttl       time.Duration
	debounce  time.Duration
	metrics   *metrics.CardMetrics
}

func NewDefaultDraftUsecase(draftRepo domain.DraftRepository, ttl, debounce time.Duration, m *metrics.CardMetrics) *DefaultDraftUsecase {
	return &DefaultDraftUsecase{
		draftRepo: draftRepo,
		ttl:       ttl,
		debounce:  debounce,
		metrics:   m,
	}
}

// NewSaver opens a debounced autosave session for one (user, component)
// pair, using the configured debounce delay.
func (uc *DefaultDraftUsecase) NewSaver(userID, component string) *DraftSaver {
	return NewDraftSaver(uc, userID, component, uc.debounce)
}

func (uc *DefaultDraftUsecase) SaveDraft(userID, component string, state map[string]any) error {
	if userID == "" {
		return &domain.ValidationError{Field: "user_id", Value: userID, Reason: "must not be empty"}
	}
	if component == "" {
		return &domain.ValidationError{Field: "component", Value: component, Reason: "must not be empty"}
	}

	now := time.Now()
	draft := &domain.SessionDraft{
		ID:        uuid.New().String(),
		UserID:    userID,
		Component: component,
		State:     state,
		SavedAt:   now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.draftRepo.SaveDraft(draft); err != nil {
		if uc.metrics != nil {
			uc.metrics.DraftSaveErrorsTotal.Inc()
		}
		return err
	}
	if uc.metrics != nil {
		uc.metrics.DraftSavesTotal.Inc()
	}
	return nil
}

func (uc *DefaultDraftUsecase) GetDraft(userID, component string) (*domain.SessionDraft, error) {
	return uc.draftRepo.GetDraft(userID, component)
}

// LoadMerged restores a form state by overlaying the saved draft onto the
// component's defaults. Saved keys win; defaults fill the rest. A missing
// or expired draft returns the defaults untouched.
func (uc *DefaultDraftUsecase) LoadMerged(userID, component string, defaults map[string]any) (map[string]any, error) {
	state := make(map[string]any, len(defaults))
	for k, v := range defaults {
		state[k] = v
	}

	draft, err := uc.draftRepo.GetDraft(userID, component)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return state, nil
	}
	for k, v := range draft.State {
		state[k] = v
	}
	return state, nil
}

func (uc *DefaultDraftUsecase) DiscardDraft(userID, component string) error {
	return uc.draftRepo.DeleteDraft(userID, component)
}

func (uc *DefaultDraftUsecase) SweepExpired() (int64, error) {
	return uc.draftRepo.DeleteExpired()
}
