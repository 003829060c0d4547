package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/inkhq/inkwell/internal/domain/project"
)

// Gateway is a mock for project.Gateway.
type Gateway struct {
	mock.Mock
}

func (m *Gateway) CreateProject(ctx context.Context, userID string, proj *project.Project) error {
	args := m.Called(ctx, userID, proj)
	return args.Error(0)
}

func (m *Gateway) GetProject(ctx context.Context, userID, projectID string) (*project.Project, error) {
	args := m.Called(ctx, userID, projectID)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) ReplaceProjectFields(ctx context.Context, userID, projectID string, fields project.Fields) error {
	args := m.Called(ctx, userID, projectID, fields)
	return args.Error(0)
}

func (m *Gateway) DeleteProject(ctx context.Context, userID, projectID string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *Gateway) SubscribeProjects(ctx context.Context, userID string, onChange func([]project.Project)) (func(), error) {
	args := m.Called(ctx, userID, onChange)
	if cancel, ok := args.Get(0).(func()); ok {
		return cancel, args.Error(1)
	}
	return nil, args.Error(1)
}
