package wizard

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is how long the controller waits after the last field
// edit before persisting a draft.
const DefaultAutosaveDelay = 3 * time.Second

// saver coalesces rapid edits into a single deferred write. The invariant is
// at most one pending save: scheduling cancels any earlier pending timer.
type saver struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func newSaver(delay time.Duration, fn func()) *saver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &saver{delay: delay, fn: fn}
}

// Schedule (re)arms the timer, replacing any pending save.
func (s *saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		s.fn()
	})
}

// Cancel drops any pending save without running it.
func (s *saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Flush runs a pending save immediately, if one is armed.
func (s *saver) Flush() {
	s.mu.Lock()
	pending := s.timer != nil
	if pending {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if pending {
		s.fn()
	}
}
