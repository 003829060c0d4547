package workspace

import (
	"context"
	"time"

	"github.com/inkhq/inkwell/internal/domain/session"
)

// StartSession transitions the tracker from Idle to Writing. It captures
// the start instant and the project-wide word total, so words written in
// any scene during the session count toward the delta. Autosave debouncing
// is suspended for the duration; any flush that was already pending fires
// now rather than racing the session-end flush later.
func (w *Workspace) StartSession(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}
	if w.writing {
		return ErrSessionActive
	}

	// One write settles every pending edit, so a failure cannot strand
	// some scenes flushed and others silently dirty with no timer.
	w.saver.Suspend()
	if err := w.flushDirtyLocked(ctx); err != nil {
		w.saver.Resume()
		return err
	}

	w.sessionStart = w.clock.Now()
	w.initialWords = w.proj.TotalWords
	w.writing = true
	return nil
}

// EndSession transitions Writing back to Idle. In order: every scene edited
// during the session is flushed, yielding the authoritative final total;
// duration and the zero-floored word delta are computed from the captured
// start state; the snapshot manager builds and appends the session record.
// The snapshot and the count therefore come from the same flushed values,
// never from a stale buffer.
//
// Ending with no open project or no active scene aborts the session: timer
// state is cleared and nothing is persisted.
func (w *Workspace) EndSession(ctx context.Context) (*session.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.writing {
		return nil, ErrNoSession
	}

	start := w.sessionStart
	initial := w.initialWords
	w.writing = false
	w.sessionStart = time.Time{}
	w.initialWords = 0
	w.saver.Resume()

	if w.proj == nil {
		w.logger.Info("session aborted", "reason", "no open project")
		return nil, nil
	}

	// Suspension covered the whole project, so the end-of-session flush
	// does too: every scene edited during the session is persisted here,
	// not just the active one.
	if err := w.flushDirtyLocked(ctx); err != nil {
		return nil, err
	}
	finalTotal := w.proj.TotalWords

	if w.activeScene == "" {
		w.logger.Info("session aborted", "reason", "no active scene")
		return nil, nil
	}
	sc := w.proj.SceneByID(w.activeScene)
	if sc == nil {
		w.logger.Info("session aborted", "reason", "active scene deleted")
		return nil, nil
	}

	duration := w.clock.Now().Sub(start).Milliseconds()
	words := finalTotal - initial
	if words < 0 {
		// A net-deleting session is never negative productivity.
		words = 0
	}

	return w.appendSessionLocked(ctx, start, duration, words, sc.ID, sc.Content)
}

// Writing reports whether a session is in progress.
func (w *Workspace) Writing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writing
}

// Elapsed returns the running session's elapsed time, for the once-a-second
// display refresh. Zero when Idle. Presentation only: the authoritative
// duration is computed at end-time from the captured start.
func (w *Workspace) Elapsed() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.writing {
		return 0
	}
	return w.clock.Now().Sub(w.sessionStart)
}
