// Package autosave debounces per-scene content persistence. Repeated edits
// to one scene within the quiescence window collapse into a single flush
// carrying the latest content; edits to different scenes debounce
// independently.
package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the quiescence window applied when the configuration
// doesn't override it.
const DefaultDelay = 1200 * time.Millisecond

// Scheduler owns one pending flush timer per scene id. The flush callback
// receives the scene id and is responsible for reading the current content
// and checking that the scene still exists; a flush that fires after its
// scene was deleted must be dropped by the callback, not applied blindly.
type Scheduler struct {
	mu        sync.Mutex
	delay     time.Duration
	flush     func(sceneID string)
	timers    map[string]*time.Timer
	suspended bool
}

// New creates a scheduler. flush is invoked on the timer goroutine and may
// take whatever locks it needs; the scheduler holds none of its own while
// calling it.
func New(delay time.Duration, flush func(sceneID string)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		delay:  delay,
		flush:  flush,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms (or re-arms) the debounce timer for a scene. A pending
// timer for the same scene is cancelled; timers for other scenes are not.
// While the scheduler is suspended this is a no-op.
func (s *Scheduler) Schedule(sceneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suspended {
		return
	}
	if t, ok := s.timers[sceneID]; ok {
		t.Stop()
	}
	var tm *time.Timer
	tm = time.AfterFunc(s.delay, func() { s.fire(sceneID, tm) })
	s.timers[sceneID] = tm
}

func (s *Scheduler) fire(sceneID string, tm *time.Timer) {
	s.mu.Lock()
	current, ok := s.timers[sceneID]
	if !ok || current != tm {
		// Cancelled or rescheduled after this timer fired.
		s.mu.Unlock()
		return
	}
	delete(s.timers, sceneID)
	s.mu.Unlock()

	s.flush(sceneID)
}

// Cancel drops any pending flush for the scene and reports whether one was
// pending. Used when the scene is deleted and its content no longer needs
// saving.
func (s *Scheduler) Cancel(sceneID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[sceneID]
	if ok {
		t.Stop()
		delete(s.timers, sceneID)
	}
	return ok
}

// Suspend stops all pending timers and disables scheduling until Resume.
// It returns the scene ids whose flushes were pending so the caller can
// flush them immediately; pending content must not be silently lost.
func (s *Scheduler) Suspend() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suspended = true
	return s.drainLocked()
}

// Resume re-enables scheduling after Suspend.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = false
}

// Drain cancels every pending timer and returns the affected scene ids so
// the caller can flush them. Used on workspace teardown.
func (s *Scheduler) Drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drainLocked()
}

func (s *Scheduler) drainLocked() []string {
	pending := make([]string, 0, len(s.timers))
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
		pending = append(pending, id)
	}
	return pending
}

// Pending reports whether a flush is currently scheduled for the scene.
func (s *Scheduler) Pending(sceneID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[sceneID]
	return ok
}
