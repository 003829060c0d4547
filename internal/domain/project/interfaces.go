package project

import "context"

// Gateway is the persistence boundary for project documents. It is the only
// component allowed to talk to the storage backend; the core calls it and
// never reimplements it. All paths are namespaced by an opaque user id
// supplied by an external auth collaborator.
type Gateway interface {
	// CreateProject durably stores a new project document.
	CreateProject(ctx context.Context, userID string, proj *Project) error
	// GetProject reads one project document.
	GetProject(ctx context.Context, userID, projectID string) (*Project, error)
	// ListProjects reads every project document owned by the user.
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	// ReplaceProjectFields upserts a subset of a project document's fields
	// atomically as one write. Unset members of fields are untouched; the
	// caller never resends unrelated fields.
	ReplaceProjectFields(ctx context.Context, userID, projectID string, fields Fields) error
	// DeleteProject removes the project document and everything it owns.
	DeleteProject(ctx context.Context, userID, projectID string) error
	// SubscribeProjects registers a push callback invoked with a full
	// authoritative snapshot of the user's project list whenever it
	// changes, including once on registration. The returned function
	// cancels the subscription.
	SubscribeProjects(ctx context.Context, userID string, onChange func([]Project)) (func(), error)
}
