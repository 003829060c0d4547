package scene

import (
	"time"

	"github.com/google/uuid"
)

// Scene is a titled, ordered unit of manuscript content within a project.
type Scene struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// WordCount is always wordcount.Count(Content); it is recomputed on
	// every content change and never edited independently.
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Ref is a lightweight scene reference for listing.
type Ref struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

// New creates an empty scene with a fresh id.
func New(title string, now time.Time) Scene {
	return Scene{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   "",
		WordCount: 0,
		CreatedAt: now,
	}
}

// AsRef returns the listing view of the scene.
func (s Scene) AsRef() Ref {
	return Ref{ID: s.ID, Title: s.Title, WordCount: s.WordCount}
}
