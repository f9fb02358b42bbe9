package usecase

import (
	"log/slog"
	"sync"
	"time"
)

// DraftSaver debounces draft writes for one (user, component) editing
// session. Rapid Update calls collapse into a single trailing save once
// the caller pauses for the configured delay; Flush writes out whatever
// is pending immediately.
type DraftSaver struct {
	drafts    DraftUsecase
	userID    string
	component string
	delay     time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]any
	lastErr error
	stopped bool
}

func NewDraftSaver(drafts DraftUsecase, userID, component string, delay time.Duration) *DraftSaver {
	return &DraftSaver{
		drafts:    drafts,
		userID:    userID,
		component: component,
		delay:     delay,
	}
}

// Update records the newest form state and restarts the debounce window.
// Only the latest state ever reaches storage.
func (s *DraftSaver) Update(state map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	s.pending = state
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush saves any pending state right away, cancelling the timer.
func (s *DraftSaver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	state := s.pending
	s.pending = nil
	s.mu.Unlock()

	if state == nil {
		return nil
	}
	err := s.drafts.SaveDraft(s.userID, s.component, state)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// Stop flushes pending state and rejects further updates.
func (s *DraftSaver) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.Flush()
}

// LastError reports the outcome of the most recent background save.
func (s *DraftSaver) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *DraftSaver) fire() {
	s.mu.Lock()
	state := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if state == nil {
		return
	}
	err := s.drafts.SaveDraft(s.userID, s.component, state)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	if err != nil {
		slog.Warn("draft autosave failed",
			slog.String("user_id", s.userID),
			slog.String("component", s.component),
			slog.Any("error", err))
	}
}
