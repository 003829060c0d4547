package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
	"github.com/inkhq/inkwell/internal/domain/workspace"
)

type handler struct {
	svc Services
}

func (h *handler) workspace(ctx context.Context) *workspace.Workspace {
	return h.svc.Workspaces.Workspace(getUserID(ctx))
}

// Tool inputs. Field names are the wire contract.

type createProjectInput struct {
	Name string `json:"name"`
}

type projectIDInput struct {
	ID string `json:"id"`
}

type renameProjectInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type emptyInput struct{}

type createSceneInput struct {
	Title string `json:"title"`
}

type sceneIDInput struct {
	SceneID string `json:"scene_id"`
}

type renameSceneInput struct {
	SceneID string `json:"scene_id"`
	Title   string `json:"title"`
}

type sceneContentInput struct {
	SceneID string `json:"scene_id"`
	Content string `json:"content"`
}

type reorderInput struct {
	SceneIDs []string `json:"scene_ids"`
}

type sessionIDInput struct {
	SessionID string `json:"session_id"`
}

// Tool outputs.

type projectOutput struct {
	Project       project.Project `json:"project"`
	ActiveSceneID string          `json:"active_scene_id,omitempty"`
}

type projectListOutput struct {
	Projects []project.Summary `json:"projects"`
}

type statusOutput struct {
	Status string `json:"status"`
}

type sceneOutput struct {
	Scene      scene.Scene `json:"scene"`
	TotalWords int         `json:"total_words"`
}

type sceneListOutput struct {
	Scenes        []scene.Ref `json:"scenes"`
	ActiveSceneID string      `json:"active_scene_id,omitempty"`
}

type contentOutput struct {
	SceneID    string `json:"scene_id"`
	TotalWords int    `json:"total_words"`
	// Persisted is false for debounced edits that are still pending.
	Persisted bool `json:"persisted"`
}

type sessionOutput struct {
	Session *session.Session `json:"session,omitempty"`
	// Aborted is true when the session ended without a recordable target,
	// such as the active scene having been deleted mid-session.
	Aborted bool `json:"aborted,omitempty"`
}

type sessionStatusOutput struct {
	Writing   bool  `json:"writing"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

type sessionListOutput struct {
	Sessions []session.Session `json:"sessions"`
}

type sceneStatsOutput struct {
	SceneID      string `json:"scene_id"`
	TotalTimeMS  int64  `json:"total_time_ms"`
	SessionCount int    `json:"session_count"`
}

// Project lifecycle.

func (h *handler) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
	proj, err := h.svc.Projects.Create(ctx, getUserID(ctx), in.Name)
	if err != nil {
		return nil, projectOutput{}, toolError(err)
	}
	return nil, projectOutput{Project: *proj}, nil
}

func (h *handler) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, projectListOutput, error) {
	summaries, err := h.svc.Projects.List(ctx, getUserID(ctx))
	if err != nil {
		return nil, projectListOutput{}, toolError(err)
	}
	return nil, projectListOutput{Projects: summaries}, nil
}

func (h *handler) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, projectOutput, error) {
	proj, err := h.svc.Projects.Get(ctx, getUserID(ctx), in.ID)
	if err != nil {
		return nil, projectOutput{}, toolError(err)
	}
	return nil, projectOutput{Project: *proj}, nil
}

func (h *handler) renameProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in renameProjectInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.svc.Projects.Rename(ctx, getUserID(ctx), in.ID, in.Name); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "renamed"}, nil
}

func (h *handler) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	ws := h.workspace(ctx)
	if proj, err := ws.Project(); err == nil && proj.ID == in.ID {
		ws.Close(ctx)
	}
	if err := h.svc.Projects.Delete(ctx, getUserID(ctx), in.ID); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "deleted"}, nil
}

// Workspace lifecycle.

func (h *handler) openProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, projectOutput, error) {
	ws := h.workspace(ctx)
	proj, err := ws.Open(ctx, in.ID)
	if err != nil {
		return nil, projectOutput{}, toolError(err)
	}
	return nil, projectOutput{Project: *proj, ActiveSceneID: ws.ActiveSceneID()}, nil
}

func (h *handler) closeProject(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	h.workspace(ctx).Close(ctx)
	return nil, statusOutput{Status: "closed"}, nil
}

// Scene operations.

func (h *handler) createScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in createSceneInput) (*sdkmcp.CallToolResult, sceneOutput, error) {
	ws := h.workspace(ctx)
	sc, err := ws.CreateScene(ctx, in.Title)
	if err != nil {
		return nil, sceneOutput{}, toolError(err)
	}
	proj, err := ws.Project()
	if err != nil {
		return nil, sceneOutput{}, toolError(err)
	}
	return nil, sceneOutput{Scene: sc, TotalWords: proj.TotalWords}, nil
}

func (h *handler) listScenes(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, sceneListOutput, error) {
	ws := h.workspace(ctx)
	refs, err := ws.SceneRefs()
	if err != nil {
		return nil, sceneListOutput{}, toolError(err)
	}
	return nil, sceneListOutput{Scenes: refs, ActiveSceneID: ws.ActiveSceneID()}, nil
}

func (h *handler) renameScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in renameSceneInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).RenameScene(ctx, in.SceneID, in.Title); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "renamed"}, nil
}

func (h *handler) selectScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in sceneIDInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).SelectScene(in.SceneID); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "selected"}, nil
}

// editScene buffers keystroke-level edits: the new content is applied in
// memory and persisted after the debounce window elapses.
func (h *handler) editScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in sceneContentInput) (*sdkmcp.CallToolResult, contentOutput, error) {
	total, err := h.workspace(ctx).EditContent(in.SceneID, in.Content)
	if err != nil {
		return nil, contentOutput{}, toolError(err)
	}
	return nil, contentOutput{SceneID: in.SceneID, TotalWords: total, Persisted: false}, nil
}

// updateScene persists immediately, bypassing the debounce window.
func (h *handler) updateScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in sceneContentInput) (*sdkmcp.CallToolResult, contentOutput, error) {
	total, err := h.workspace(ctx).UpdateContent(ctx, in.SceneID, in.Content)
	if err != nil {
		return nil, contentOutput{}, toolError(err)
	}
	return nil, contentOutput{SceneID: in.SceneID, TotalWords: total, Persisted: true}, nil
}

func (h *handler) reorderScenes(ctx context.Context, _ *sdkmcp.CallToolRequest, in reorderInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).Reorder(ctx, in.SceneIDs); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "reordered"}, nil
}

func (h *handler) deleteScene(ctx context.Context, _ *sdkmcp.CallToolRequest, in sceneIDInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).DeleteScene(ctx, in.SceneID); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "deleted"}, nil
}

// Writing sessions.

func (h *handler) startSession(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).StartSession(ctx); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "writing"}, nil
}

func (h *handler) endSession(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, sessionOutput, error) {
	sess, err := h.workspace(ctx).EndSession(ctx)
	if err != nil {
		return nil, sessionOutput{}, toolError(err)
	}
	if sess == nil {
		return nil, sessionOutput{Aborted: true}, nil
	}
	return nil, sessionOutput{Session: sess}, nil
}

func (h *handler) sessionStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, sessionStatusOutput, error) {
	ws := h.workspace(ctx)
	return nil, sessionStatusOutput{
		Writing:   ws.Writing(),
		ElapsedMS: ws.Elapsed().Milliseconds(),
	}, nil
}

func (h *handler) listSessions(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, sessionListOutput, error) {
	sessions, err := h.workspace(ctx).Sessions()
	if err != nil {
		return nil, sessionListOutput{}, toolError(err)
	}
	return nil, sessionListOutput{Sessions: sessions}, nil
}

func (h *handler) revertSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in sessionIDInput) (*sdkmcp.CallToolResult, statusOutput, error) {
	if err := h.workspace(ctx).Revert(ctx, in.SessionID); err != nil {
		return nil, statusOutput{}, toolError(err)
	}
	return nil, statusOutput{Status: "reverted"}, nil
}

func (h *handler) sceneStats(ctx context.Context, _ *sdkmcp.CallToolRequest, in sceneIDInput) (*sdkmcp.CallToolResult, sceneStatsOutput, error) {
	timeMS, count, err := h.workspace(ctx).SceneStats(in.SceneID)
	if err != nil {
		return nil, sceneStatsOutput{}, toolError(err)
	}
	return nil, sceneStatsOutput{SceneID: in.SceneID, TotalTimeMS: timeMS, SessionCount: count}, nil
}

// registerTools registers all tools on the server.
func registerTools(server *sdkmcp.Server, svc Services) {
	h := &handler{svc: svc}

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new writing project seeded with one empty scene",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with scene counts and word/time totals",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project with its full scene and session lists",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_project",
		Description: "Rename a project",
	}, h.renameProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and all of its scenes and sessions",
	}, h.deleteProject)

	// Workspace
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_project",
		Description: "Open a project for editing; the first scene becomes active",
	}, h.openProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_project",
		Description: "Close the open project, flushing any pending autosaves",
	}, h.closeProject)

	// Scenes
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_scene",
		Description: "Append a new empty scene to the open project",
	}, h.createScene)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_scenes",
		Description: "List the open project's scenes in manuscript order, without content",
	}, h.listScenes)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_scene",
		Description: "Rename a scene; an empty title is ignored",
	}, h.renameScene)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_scene",
		Description: "Make a scene the active editing target",
	}, h.selectScene)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_scene",
		Description: "Apply an in-progress content edit; the write is debounced and persisted after a short quiet period",
	}, h.editScene)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_scene",
		Description: "Replace a scene's content and persist immediately",
	}, h.updateScene)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_scenes",
		Description: "Reorder scenes; scene_ids must contain every current scene id exactly once",
	}, h.reorderScenes)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_scene",
		Description: "Delete a scene; the last remaining scene cannot be deleted",
	}, h.deleteScene)

	// Sessions
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_session",
		Description: "Start a timed writing session; autosave is suspended until it ends",
	}, h.startSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "end_session",
		Description: "End the writing session, recording duration, words written, and a snapshot of the active scene",
	}, h.endSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "session_status",
		Description: "Report whether a writing session is active and its elapsed time",
	}, h.sessionStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sessions",
		Description: "List recorded writing sessions in creation order",
	}, h.listSessions)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "revert_session",
		Description: "Restore a scene's content from a session snapshot; history is preserved",
	}, h.revertSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "scene_stats",
		Description: "Report total writing time and session count for one scene",
	}, h.sceneStats)
}
