package session

import "time"

// Snapshot is an immutable copy of a scene's content captured at the moment
// a session ends. It references its scene by id only: the scene may later be
// renamed, edited, or deleted without affecting the snapshot.
type Snapshot struct {
	SceneID string `json:"scene_id"`
	Content string `json:"content"`
}

// Session records one timed interval of writing activity. Sessions are
// created exactly once, at end-of-session, and are immutable thereafter.
type Session struct {
	ID string `json:"id"`
	// StartTime is the instant the session began, not the instant the
	// record was committed.
	StartTime time.Time `json:"start_time"`
	// Duration is elapsed wall-clock time in milliseconds.
	Duration int64 `json:"duration"`
	// WordsWritten is the project-wide word delta over the session,
	// floored at zero.
	WordsWritten int      `json:"words_written"`
	Snapshot     Snapshot `json:"snapshot"`
}
