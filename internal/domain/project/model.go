package project

import (
	"time"

	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
)

// Project is the top-level container owning an ordered list of scenes and a
// list of sessions, with aggregate word/time totals. Scene order is the
// manuscript order. Session order is creation order.
//
// Invariants:
//   - TotalWords == sum of Scenes[i].WordCount after every scene mutation
//   - TotalTime == sum of Sessions[i].Duration after every appended session
type Project struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Scenes   []scene.Scene     `json:"scenes"`
	Sessions []session.Session `json:"sessions"`
	// TotalWords is the sum of all scenes' word counts.
	TotalWords int `json:"total_words"`
	// TotalTime is the sum of all session durations, in milliseconds.
	TotalTime    int64     `json:"total_time"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SceneCount   int       `json:"scene_count"`
	SessionCount int       `json:"session_count"`
	TotalWords   int       `json:"total_words"`
	TotalTime    int64     `json:"total_time"`
	LastModified time.Time `json:"last_modified"`
}

// Fields is a partial field set for ReplaceProjectFields. Nil members are
// left untouched by the write; non-nil members replace the stored value
// atomically as one write.
type Fields struct {
	Name         *string
	Scenes       []scene.Scene
	Sessions     []session.Session
	TotalWords   *int
	TotalTime    *int64
	LastModified *time.Time
}

// Summarize returns the listing view of the project.
func (p *Project) Summarize() Summary {
	return Summary{
		ID:           p.ID,
		Name:         p.Name,
		SceneCount:   len(p.Scenes),
		SessionCount: len(p.Sessions),
		TotalWords:   p.TotalWords,
		TotalTime:    p.TotalTime,
		LastModified: p.LastModified,
	}
}

// SceneByID returns a pointer into the project's scene list, or nil.
func (p *Project) SceneByID(id string) *scene.Scene {
	for i := range p.Scenes {
		if p.Scenes[i].ID == id {
			return &p.Scenes[i]
		}
	}
	return nil
}

// SessionByID returns a pointer into the project's session list, or nil.
func (p *Project) SessionByID(id string) *session.Session {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i]
		}
	}
	return nil
}
