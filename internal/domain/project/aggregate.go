package project

import (
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
)

// SumWords returns the total word count across scenes. This is the only way
// a project's TotalWords may be derived.
func SumWords(scenes []scene.Scene) int {
	total := 0
	for i := range scenes {
		total += scenes[i].WordCount
	}
	return total
}

// SumTime returns the total duration in milliseconds across sessions.
func SumTime(sessions []session.Session) int64 {
	var total int64
	for i := range sessions {
		total += sessions[i].Duration
	}
	return total
}

// SceneTime returns the time in milliseconds spent in sessions that ended on
// the given scene. Read-side derivation only, never persisted.
func SceneTime(sessions []session.Session, sceneID string) int64 {
	var total int64
	for i := range sessions {
		if sessions[i].Snapshot.SceneID == sceneID {
			total += sessions[i].Duration
		}
	}
	return total
}

// SessionsForScene returns the sessions whose snapshot targets the given
// scene, in creation order.
func SessionsForScene(sessions []session.Session, sceneID string) []session.Session {
	var matched []session.Session
	for i := range sessions {
		if sessions[i].Snapshot.SceneID == sceneID {
			matched = append(matched, sessions[i])
		}
	}
	return matched
}
