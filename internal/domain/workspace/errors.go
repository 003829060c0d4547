package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProject indicates no project is open in the workspace.
	ErrNoProject = errors.New("no active project")
	// ErrSceneNotFound indicates the scene doesn't exist in the open project.
	ErrSceneNotFound = errors.New("scene not found")
	// ErrLastScene indicates a refusal to delete the only remaining scene.
	ErrLastScene = errors.New("cannot delete last scene")
	// ErrInvalidOrder indicates a reorder that is not a permutation of the
	// existing scene ids.
	ErrInvalidOrder = errors.New("scene order must be a permutation of the existing scenes")
	// ErrSessionActive indicates a session is already in progress.
	ErrSessionActive = errors.New("session already in progress")
	// ErrNoSession indicates no session is in progress.
	ErrNoSession = errors.New("no session in progress")
	// ErrSessionNotFound indicates the session doesn't exist in the open project.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSnapshotSceneMissing indicates a revert whose target scene no
	// longer exists. The revert makes no change.
	ErrSnapshotSceneMissing = errors.New("snapshot scene no longer exists")
)

// PersistError reports a failed durable write. The in-memory optimistic
// state has already been rolled back to its pre-operation value by the time
// the caller sees this; the caller decides whether to retry, discard, or
// alert.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
