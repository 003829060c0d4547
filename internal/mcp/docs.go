package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `inkwell stores writing work as Projects → Scenes → Sessions.

Core concepts (keep this mental model small):
- Project: a container owning an ordered list of scenes and a history of writing sessions, plus word/time totals.
- Scene: one unit of manuscript text. Scene order is manuscript order. Word counts ignore markup.
- Session: a timed writing interval. Created only when it ends; records duration, words written, and a snapshot of the active scene.
- Snapshot: an immutable copy of the active scene's content at end-of-session. Reverting restores it; history is never rewritten.
- Active scene: the current editing target. open_project selects the first scene; select_scene changes it.

Rules of engagement (default workflow):
1) Orient: list_projects, then open_project(id).
2) Edit: edit_scene for in-progress typing (debounced persistence); update_scene when a write must land immediately.
3) Track: start_session before a focused writing block; end_session when done. Totals update automatically.
4) Recover: list_sessions → revert_session(session_id) restores the snapshot content. The session history survives the revert.
5) Structure: create_scene / rename_scene / reorder_scenes / delete_scene. A project always keeps at least one scene.

Docs (progressive disclosure):
- inkwell://docs/index (what to read when)
- inkwell://docs/concepts (glossary + invariants)
- inkwell://docs/workflows/writing-session
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "inkwell://docs/index",
		Name:        "docs_index",
		Title:       "inkwell docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# inkwell: Agent Docs Index

This server is designed for **progressive disclosure**: keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. ` + "`list_projects`" + ` then ` + "`open_project`" + ` to orient.
2. ` + "`edit_scene`" + ` for typing-speed edits; ` + "`update_scene`" + ` for immediate persistence.
3. ` + "`start_session`" + ` / ` + "`end_session`" + ` around focused writing blocks.
4. ` + "`list_sessions`" + ` + ` + "`revert_session`" + ` to restore earlier scene content.

## Docs (read on demand)

- ` + "`inkwell://docs/concepts`" + ` — glossary + invariants (word counting, totals, snapshots).
- ` + "`inkwell://docs/workflows/writing-session`" + ` — the session loop and how autosave interacts with it.
`,
	},
	{
		URI:         "inkwell://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts and invariants",
		Description: "Mental model + invariant rules: word counting, aggregate totals, snapshots, and the active scene.",
		Content: `# Concepts and invariants

## Glossary

- **Project**: owns ordered **scenes** and a **session** history, with ` + "`total_words`" + ` and ` + "`total_time`" + ` aggregates.
- **Scene**: manuscript text unit. ` + "`word_count`" + ` is computed from content with markup stripped.
- **Active scene**: the current editing target. Selection is presentation state and is never persisted.
- **Session**: a timed writing interval, created once at end-of-session and immutable thereafter.
- **Snapshot**: copy of the active scene's content at end-of-session, keyed by scene id.

## Invariants

- ` + "`total_words`" + ` always equals the sum of scene word counts; ` + "`total_time`" + ` always equals the sum of session durations.
- ` + "`words_written`" + ` is the project-wide word delta over the session, floored at zero.
- Scene order changes are permutations: ` + "`reorder_scenes`" + ` must name every scene exactly once.
- A project never drops to zero scenes; deleting the last scene is refused.
- Reverting applies a snapshot as a normal content update. Sessions are never deleted or rewritten.

## Persistence model

- ` + "`edit_scene`" + ` is debounced: the write lands after a short quiet period. State you read back immediately may not be persisted yet.
- ` + "`update_scene`" + `, structural changes, and session ends persist immediately.
- Failed persists roll the in-memory state back; the tool returns an error instead of lying about success.
`,
	},
	{
		URI:         "inkwell://docs/workflows/writing-session",
		Name:        "docs_workflow_writing_session",
		Title:       "Workflow: writing sessions",
		Description: "Playbook for the session loop: start, write, end, revert.",
		Content: `# Workflow: writing sessions

## Normal loop

1) ` + "`start_session`" + ` — any pending autosave flushes first, then the word baseline is captured. Autosave stays suspended while writing.

2) Write with ` + "`edit_scene`" + ` against the active scene (or any scene; words count project-wide).

3) ` + "`end_session`" + ` — the final content is persisted, and one session record lands with:
   - ` + "`duration`" + `: wall-clock milliseconds from start to end
   - ` + "`words_written`" + `: words added since the session started (never negative)
   - ` + "`snapshot`" + `: the active scene's content at this moment

4) ` + "`session_status`" + ` reports whether a session is running and its elapsed time.

## Reverting

- ` + "`list_sessions`" + ` to find the snapshot you want.
- ` + "`revert_session(session_id)`" + ` rewrites the snapshot's scene to the snapshot content and makes it active.
- Reverting fails if the snapshot's scene has been deleted; the history entry itself remains usable for other scenes.
- A revert is an ordinary edit: you can revert the revert by picking a later session.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
