package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/session"
)

// appendSessionLocked builds the immutable session record and appends it to
// the project history. StartTime is the true session-start instant, not the
// commit instant, so the snapshot chronology matches what the writer did.
func (w *Workspace) appendSessionLocked(ctx context.Context, start time.Time, durationMS int64, wordsWritten int, sceneID, content string) (*session.Session, error) {
	sess := session.Session{
		ID:           uuid.NewString(),
		StartTime:    start,
		Duration:     durationMS,
		WordsWritten: wordsWritten,
		Snapshot: session.Snapshot{
			SceneID: sceneID,
			Content: content,
		},
	}

	prevTotal := w.proj.TotalTime
	w.proj.Sessions = append(w.proj.Sessions, sess)
	w.proj.TotalTime = project.SumTime(w.proj.Sessions)

	total := w.proj.TotalTime
	err := w.commit(ctx, "session", project.Fields{
		Sessions:  w.proj.Sessions,
		TotalTime: &total,
	}, func() {
		w.proj.Sessions = w.proj.Sessions[:len(w.proj.Sessions)-1]
		w.proj.TotalTime = prevTotal
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("session recorded",
		"session_id", sess.ID,
		"scene_id", sceneID,
		"duration_ms", durationMS,
		"words_written", wordsWritten,
	)
	return &sess, nil
}

// Revert destructively overwrites a scene's current content with the given
// session's snapshot and makes that scene active. The snapshot's scene must
// still exist; otherwise nothing changes. The session history is untouched,
// so the same snapshot stays available for future reverts. Callers are
// expected to confirm with the user before invoking.
func (w *Workspace) Revert(ctx context.Context, sessionID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}
	sess := w.proj.SessionByID(sessionID)
	if sess == nil {
		return ErrSessionNotFound
	}
	if w.proj.SceneByID(sess.Snapshot.SceneID) == nil {
		return ErrSnapshotSceneMissing
	}

	if _, err := w.updateContentLocked(ctx, sess.Snapshot.SceneID, sess.Snapshot.Content); err != nil {
		return err
	}

	w.activeScene = sess.Snapshot.SceneID
	return nil
}

// Sessions returns the project's session history in creation order.
func (w *Workspace) Sessions() ([]session.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return nil, ErrNoProject
	}
	return append([]session.Session(nil), w.proj.Sessions...), nil
}

// SceneStats derives per-scene session totals on demand by filtering the
// session history; nothing here is persisted.
func (w *Workspace) SceneStats(sceneID string) (timeMS int64, sessions int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return 0, 0, ErrNoProject
	}
	if w.proj.SceneByID(sceneID) == nil {
		return 0, 0, ErrSceneNotFound
	}

	timeMS = project.SceneTime(w.proj.Sessions, sceneID)
	sessions = len(project.SessionsForScene(w.proj.Sessions, sceneID))
	return timeMS, sessions, nil
}
