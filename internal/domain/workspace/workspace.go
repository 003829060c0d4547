// Package workspace holds the live editing state for one user: the open
// project, the active scene, the writing-session state machine, and the
// debounced autosave pipeline.
//
// All public methods serialize on one mutex, so every operation runs to
// completion before the next is observed. Mutations follow an optimistic
// discipline: in-memory state changes first, the gateway write is issued,
// and on failure the prior state is restored and a *PersistError surfaced.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inkhq/inkwell/internal/autosave"
	"github.com/inkhq/inkwell/internal/clock"
	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
	"github.com/inkhq/inkwell/internal/gateway"
)

// Workspace is the explicit context object owning a user's editing state.
type Workspace struct {
	mu     sync.Mutex
	gw     project.Gateway
	clock  clock.Clock
	logger *slog.Logger
	saver  *autosave.Scheduler

	userID      string
	proj        *project.Project
	activeScene string

	// Session Tracker state: Idle (writing == false) or Writing.
	writing      bool
	sessionStart time.Time
	initialWords int

	// dirty maps scene id to its last persisted state, recorded on the
	// first unpersisted edit. A failed autosave flush rolls back to this.
	dirty map[string]scene.Scene

	onSaveErr func(error)
}

// New creates a workspace for one user. autosaveDelay is the debounce
// quiescence window; zero selects the default.
func New(userID string, gw project.Gateway, clk clock.Clock, autosaveDelay time.Duration, logger *slog.Logger) *Workspace {
	w := &Workspace{
		gw:     gw,
		clock:  clk,
		logger: logger,
		userID: userID,
		dirty:  make(map[string]scene.Scene),
	}
	w.saver = autosave.New(autosaveDelay, w.flushAutosave)
	return w
}

// OnSaveError registers a handler for autosave persistence failures, which
// surface asynchronously. The handler runs on the flush goroutine.
func (w *Workspace) OnSaveError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSaveErr = fn
}

// Open loads a project into the workspace, making its first scene active.
// Any state from a previously open project is flushed and discarded.
func (w *Workspace) Open(ctx context.Context, projectID string) (*project.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.teardownLocked(ctx)

	proj, err := w.gw.GetProject(ctx, w.userID, projectID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("opening project: %w", err)
	}

	w.proj = proj
	w.activeScene = ""
	if len(proj.Scenes) > 0 {
		w.activeScene = proj.Scenes[0].ID
	}

	snapshot := w.projectCopyLocked()
	return &snapshot, nil
}

// Close flushes pending autosaves, aborts any running session without
// recording it, and releases the open project.
func (w *Workspace) Close(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.teardownLocked(ctx)
}

func (w *Workspace) teardownLocked(ctx context.Context) {
	w.saver.Drain()
	w.flushDirtyLocked(ctx)
	w.saver.Resume()
	w.writing = false
	w.sessionStart = time.Time{}
	w.initialWords = 0
	w.proj = nil
	w.activeScene = ""
	w.dirty = make(map[string]scene.Scene)
}

// Project returns a copy of the open project, or an error if none is open.
func (w *Workspace) Project() (project.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return project.Project{}, ErrNoProject
	}
	return w.projectCopyLocked(), nil
}

// ActiveSceneID returns the id of the active scene, or "" when none.
func (w *Workspace) ActiveSceneID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeScene
}

// commit stamps lastModified, issues the partial write, and rolls back via
// restore on failure. The caller mutates in-memory state before calling and
// passes a restore that undoes exactly that mutation.
func (w *Workspace) commit(ctx context.Context, op string, fields project.Fields, restore func()) error {
	now := w.clock.Now()
	prevModified := w.proj.LastModified
	w.proj.LastModified = now
	fields.LastModified = &now

	if err := w.gw.ReplaceProjectFields(ctx, w.userID, w.proj.ID, fields); err != nil {
		w.proj.LastModified = prevModified
		if restore != nil {
			restore()
		}
		return &PersistError{Op: op, Err: err}
	}

	// A write carrying the scene list persists every scene's current
	// content, whatever operation triggered it. Any recorded rollback
	// baselines now point behind the durable state and must not be
	// restored by a later failed flush.
	if fields.Scenes != nil {
		for id := range w.dirty {
			w.saver.Cancel(id)
			delete(w.dirty, id)
		}
	}
	return nil
}

// flushAutosave runs on the debounce timer goroutine. The fired timer names
// one scene, but the gateway write carries the whole scene list, so a single
// flush settles every scene with unpersisted edits.
func (w *Workspace) flushAutosave(string) {
	w.mu.Lock()
	handler := w.onSaveErr
	err := w.flushDirtyLocked(context.Background())
	w.mu.Unlock()

	if err != nil && handler != nil {
		handler(err)
	}
}

// flushDirtyLocked persists the current content of every scene carrying
// unpersisted edits in one write. A pending edit whose project or scene is
// gone by the time the flush settles is dropped; a failed write rolls every
// dirty scene back to its last persisted state.
func (w *Workspace) flushDirtyLocked(ctx context.Context) error {
	for sceneID := range w.dirty {
		w.saver.Cancel(sceneID)
		if w.proj == nil || w.proj.SceneByID(sceneID) == nil {
			delete(w.dirty, sceneID)
		}
	}
	if len(w.dirty) == 0 {
		return nil
	}

	baselines := w.dirty
	total := w.proj.TotalWords
	err := w.commit(ctx, "scene content", project.Fields{
		Scenes:     w.proj.Scenes,
		TotalWords: &total,
	}, func() {
		for id, base := range baselines {
			if sc := w.proj.SceneByID(id); sc != nil {
				sc.Content = base.Content
				sc.WordCount = base.WordCount
			}
		}
		w.proj.TotalWords = project.SumWords(w.proj.Scenes)
	})
	if err != nil {
		// The rollback re-aligned memory with the store, so nothing is
		// dirty anymore; the loss surfaces through the returned error.
		w.dirty = make(map[string]scene.Scene)
		w.logger.Error("autosave flush failed", "error", err)
		return err
	}
	return nil
}

// projectCopyLocked returns a copy whose slices do not alias live state.
func (w *Workspace) projectCopyLocked() project.Project {
	cp := *w.proj
	cp.Scenes = append([]scene.Scene(nil), w.proj.Scenes...)
	cp.Sessions = append([]session.Session(nil), w.proj.Sessions...)
	return cp
}
