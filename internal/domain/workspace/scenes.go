package workspace

import (
	"context"
	"strings"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/wordcount"
)

// CreateScene appends a new empty scene to the end of the manuscript order.
func (w *Workspace) CreateScene(ctx context.Context, title string) (scene.Scene, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return scene.Scene{}, ErrNoProject
	}

	sc := scene.New(title, w.clock.Now())
	w.proj.Scenes = append(w.proj.Scenes, sc)

	err := w.commit(ctx, "scenes", project.Fields{Scenes: w.proj.Scenes}, func() {
		w.proj.Scenes = w.proj.Scenes[:len(w.proj.Scenes)-1]
	})
	if err != nil {
		return scene.Scene{}, err
	}

	if w.activeScene == "" {
		w.activeScene = sc.ID
	}
	return sc, nil
}

// RenameScene updates a scene title in place, leaving order and content
// untouched. A title that is empty after trimming makes this a no-op.
func (w *Workspace) RenameScene(ctx context.Context, sceneID, newTitle string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}
	if strings.TrimSpace(newTitle) == "" {
		return nil
	}

	sc := w.proj.SceneByID(sceneID)
	if sc == nil {
		return ErrSceneNotFound
	}

	prev := sc.Title
	sc.Title = newTitle

	return w.commit(ctx, "scene title", project.Fields{Scenes: w.proj.Scenes}, func() {
		sc.Title = prev
	})
}

// UpdateContent replaces a scene's content, recomputes its word count and
// the project total, persists, and returns the new total. Redundant calls
// with unchanged, already-persisted content change nothing and issue no
// write. This synchronous path is used by session-end flushes and reverts;
// interactive edits go through EditContent.
func (w *Workspace) UpdateContent(ctx context.Context, sceneID, content string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateContentLocked(ctx, sceneID, content)
}

func (w *Workspace) updateContentLocked(ctx context.Context, sceneID, content string) (int, error) {
	if w.proj == nil {
		return 0, ErrNoProject
	}
	sc := w.proj.SceneByID(sceneID)
	if sc == nil {
		return 0, ErrSceneNotFound
	}

	_, pendingEdit := w.dirty[sceneID]
	if sc.Content == content && !pendingEdit {
		return w.proj.TotalWords, nil
	}

	prevContent := sc.Content
	prevCount := sc.WordCount
	prevTotal := w.proj.TotalWords

	sc.Content = content
	sc.WordCount = wordcount.Count(content)
	w.proj.TotalWords = project.SumWords(w.proj.Scenes)

	total := w.proj.TotalWords
	err := w.commit(ctx, "scene content", project.Fields{
		Scenes:     w.proj.Scenes,
		TotalWords: &total,
	}, func() {
		sc.Content = prevContent
		sc.WordCount = prevCount
		w.proj.TotalWords = prevTotal
	})
	if err != nil {
		return 0, err
	}
	return w.proj.TotalWords, nil
}

// EditContent is the interactive editing path: the scene and project totals
// update in memory immediately and the durable write is debounced, so a
// typing burst collapses into one persistence call. Returns the new project
// total. While a session is Writing the debounce is suspended; the content
// is flushed once at session end instead.
func (w *Workspace) EditContent(sceneID, content string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return 0, ErrNoProject
	}
	sc := w.proj.SceneByID(sceneID)
	if sc == nil {
		return 0, ErrSceneNotFound
	}
	if sc.Content == content {
		return w.proj.TotalWords, nil
	}

	if _, ok := w.dirty[sceneID]; !ok {
		w.dirty[sceneID] = *sc
	}

	sc.Content = content
	sc.WordCount = wordcount.Count(content)
	w.proj.TotalWords = project.SumWords(w.proj.Scenes)

	w.saver.Schedule(sceneID)
	return w.proj.TotalWords, nil
}

// Reorder replaces the manuscript order. The new order must be a
// permutation of the existing scene ids; no scene is added, removed, or
// otherwise changed by reordering.
func (w *Workspace) Reorder(ctx context.Context, orderedIDs []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}
	if len(orderedIDs) != len(w.proj.Scenes) {
		return ErrInvalidOrder
	}

	byID := make(map[string]scene.Scene, len(w.proj.Scenes))
	for _, sc := range w.proj.Scenes {
		byID[sc.ID] = sc
	}

	reordered := make([]scene.Scene, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		sc, ok := byID[id]
		if !ok {
			return ErrInvalidOrder
		}
		delete(byID, id)
		reordered = append(reordered, sc)
	}

	prev := w.proj.Scenes
	w.proj.Scenes = reordered

	return w.commit(ctx, "scene order", project.Fields{Scenes: w.proj.Scenes}, func() {
		w.proj.Scenes = prev
	})
}

// DeleteScene removes a scene and recomputes the project total. Deleting
// the last remaining scene is refused: a project that has scenes never
// reaches a zero-scene state. If the deleted scene was active, the first
// remaining scene becomes active.
func (w *Workspace) DeleteScene(ctx context.Context, sceneID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}

	idx := -1
	for i := range w.proj.Scenes {
		if w.proj.Scenes[i].ID == sceneID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrSceneNotFound
	}
	if len(w.proj.Scenes) == 1 {
		return ErrLastScene
	}

	// The scene's content is going away with it; drop any pending flush.
	w.saver.Cancel(sceneID)
	delete(w.dirty, sceneID)

	prevScenes := w.proj.Scenes
	prevTotal := w.proj.TotalWords
	prevActive := w.activeScene

	remaining := make([]scene.Scene, 0, len(prevScenes)-1)
	remaining = append(remaining, prevScenes[:idx]...)
	remaining = append(remaining, prevScenes[idx+1:]...)

	w.proj.Scenes = remaining
	w.proj.TotalWords = project.SumWords(remaining)
	if w.activeScene == sceneID {
		w.activeScene = remaining[0].ID
	}

	total := w.proj.TotalWords
	return w.commit(ctx, "scene delete", project.Fields{
		Scenes:     w.proj.Scenes,
		TotalWords: &total,
	}, func() {
		w.proj.Scenes = prevScenes
		w.proj.TotalWords = prevTotal
		w.activeScene = prevActive
	})
}

// SceneRefs returns the listing view of the manuscript: scene refs in
// manuscript order, without content payloads.
func (w *Workspace) SceneRefs() ([]scene.Ref, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return nil, ErrNoProject
	}
	refs := make([]scene.Ref, 0, len(w.proj.Scenes))
	for i := range w.proj.Scenes {
		refs = append(refs, w.proj.Scenes[i].AsRef())
	}
	return refs, nil
}

// SelectScene marks a scene active. Presentation state only; nothing is
// persisted.
func (w *Workspace) SelectScene(sceneID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.proj == nil {
		return ErrNoProject
	}
	if w.proj.SceneByID(sceneID) == nil {
		return ErrSceneNotFound
	}
	w.activeScene = sceneID
	return nil
}
