package mcp

import (
	"errors"
	"fmt"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/workspace"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through unmapped.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling or call list_projects"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", RecoveryHint: "Names must be non-empty"}
	case errors.Is(err, workspace.ErrNoProject):
		return &APIError{Code: "NO_PROJECT_OPEN", Message: "no project open", RecoveryHint: "Call open_project first"}
	case errors.Is(err, workspace.ErrSceneNotFound):
		return &APIError{Code: "SCENE_NOT_FOUND", Message: "scene not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, workspace.ErrLastScene):
		return &APIError{Code: "LAST_SCENE", Message: "cannot delete the only scene", RecoveryHint: "Create another scene first"}
	case errors.Is(err, workspace.ErrInvalidOrder):
		return &APIError{Code: "INVALID_ORDER", Message: "order is not a permutation of current scenes", RecoveryHint: "Include every scene id exactly once"}
	case errors.Is(err, workspace.ErrSessionActive):
		return &APIError{Code: "SESSION_ACTIVE", Message: "a writing session is already active", RecoveryHint: "Call end_session first"}
	case errors.Is(err, workspace.ErrNoSession):
		return &APIError{Code: "NO_SESSION", Message: "no writing session is active", RecoveryHint: "Call start_session first"}
	case errors.Is(err, workspace.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found", RecoveryHint: "Call list_sessions for valid ids"}
	case errors.Is(err, workspace.ErrSnapshotSceneMissing):
		return &APIError{Code: "SNAPSHOT_SCENE_MISSING", Message: "the scene this snapshot belongs to no longer exists", RecoveryHint: "Reverting requires the original scene"}
	default:
		return nil
	}
}

// toolError returns the mapped APIError when one applies, otherwise the
// original error.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
