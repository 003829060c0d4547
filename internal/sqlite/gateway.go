package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
	"github.com/inkhq/inkwell/internal/gateway"
)

// Gateway implements project.Gateway for SQLite. Subscribers are held
// in-process: every successful write re-reads the owner's project list and
// pushes the full snapshot to each registered listener.
type Gateway struct {
	db *DB

	mu      sync.Mutex
	subs    map[string]map[int]func([]project.Project)
	nextSub int
}

// NewGateway creates a new Gateway
func NewGateway(db *DB) *Gateway {
	return &Gateway{
		db:   db,
		subs: make(map[string]map[int]func([]project.Project)),
	}
}

// CreateProject inserts a new project document
func (g *Gateway) CreateProject(ctx context.Context, userID string, proj *project.Project) error {
	scenes, sessions, err := encodeLists(proj.Scenes, proj.Sessions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, owner_id, name, scenes, sessions, total_words, total_time, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = g.db.ExecContext(ctx, query,
		proj.ID,
		userID,
		proj.Name,
		scenes,
		sessions,
		proj.TotalWords,
		proj.TotalTime,
		proj.CreatedAt,
		proj.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	g.notify(ctx, userID)
	return nil
}

// GetProject retrieves a project by ID
func (g *Gateway) GetProject(ctx context.Context, userID, projectID string) (*project.Project, error) {
	query := `
		SELECT id, name, scenes, sessions, total_words, total_time, created_at, last_modified
		FROM projects
		WHERE id = ? AND owner_id = ?
	`

	proj, err := scanProject(g.db.QueryRowContext(ctx, query, projectID, userID))
	if err == sql.ErrNoRows {
		return nil, gateway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// ListProjects returns all projects owned by the user, most recently
// modified first
func (g *Gateway) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	query := `
		SELECT id, name, scenes, sessions, total_words, total_time, created_at, last_modified
		FROM projects
		WHERE owner_id = ?
		ORDER BY last_modified DESC, created_at DESC
	`

	rows, err := g.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// ReplaceProjectFields writes the non-nil members of fields as a single
// atomic UPDATE. Nil members leave the stored column untouched.
func (g *Gateway) ReplaceProjectFields(ctx context.Context, userID, projectID string, fields project.Fields) error {
	var sets []string
	var args []any

	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Scenes != nil {
		encoded, err := json.Marshal(fields.Scenes)
		if err != nil {
			return fmt.Errorf("failed to encode scenes: %w", err)
		}
		sets = append(sets, "scenes = ?")
		args = append(args, string(encoded))
	}
	if fields.Sessions != nil {
		encoded, err := json.Marshal(fields.Sessions)
		if err != nil {
			return fmt.Errorf("failed to encode sessions: %w", err)
		}
		sets = append(sets, "sessions = ?")
		args = append(args, string(encoded))
	}
	if fields.TotalWords != nil {
		sets = append(sets, "total_words = ?")
		args = append(args, *fields.TotalWords)
	}
	if fields.TotalTime != nil {
		sets = append(sets, "total_time = ?")
		args = append(args, *fields.TotalTime)
	}
	if fields.LastModified != nil {
		sets = append(sets, "last_modified = ?")
		args = append(args, *fields.LastModified)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE projects SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
	args = append(args, projectID, userID)

	result, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return gateway.ErrNotFound
	}

	g.notify(ctx, userID)
	return nil
}

// DeleteProject removes a project document
func (g *Gateway) DeleteProject(ctx context.Context, userID, projectID string) error {
	result, err := g.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return gateway.ErrNotFound
	}

	g.notify(ctx, userID)
	return nil
}

// SubscribeProjects registers a listener for the user's project list. The
// listener is invoked once with the current list before SubscribeProjects
// returns, then again after every successful write. The returned cancel
// function unregisters the listener.
func (g *Gateway) SubscribeProjects(ctx context.Context, userID string, onChange func([]project.Project)) (func(), error) {
	projects, err := g.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	if g.subs[userID] == nil {
		g.subs[userID] = make(map[int]func([]project.Project))
	}
	g.subs[userID][id] = onChange
	g.mu.Unlock()

	onChange(projects)

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs[userID], id)
		if len(g.subs[userID]) == 0 {
			delete(g.subs, userID)
		}
	}
	return cancel, nil
}

func (g *Gateway) notify(ctx context.Context, userID string) {
	g.mu.Lock()
	listeners := make([]func([]project.Project), 0, len(g.subs[userID]))
	for _, fn := range g.subs[userID] {
		listeners = append(listeners, fn)
	}
	g.mu.Unlock()

	if len(listeners) == 0 {
		return
	}

	projects, err := g.ListProjects(ctx, userID)
	if err != nil {
		return
	}
	for _, fn := range listeners {
		fn(projects)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var scenesJSON, sessionsJSON string

	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&scenesJSON,
		&sessionsJSON,
		&proj.TotalWords,
		&proj.TotalTime,
		&proj.CreatedAt,
		&proj.LastModified,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(scenesJSON), &proj.Scenes); err != nil {
		return nil, fmt.Errorf("failed to decode scenes: %w", err)
	}
	if err := json.Unmarshal([]byte(sessionsJSON), &proj.Sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return &proj, nil
}

func encodeLists(scenes []scene.Scene, sessions []session.Session) (string, string, error) {
	if scenes == nil {
		scenes = []scene.Scene{}
	}
	if sessions == nil {
		sessions = []session.Session{}
	}

	scenesJSON, err := json.Marshal(scenes)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode scenes: %w", err)
	}
	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode sessions: %w", err)
	}
	return string(scenesJSON), string(sessionsJSON), nil
}
