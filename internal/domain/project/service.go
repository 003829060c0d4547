package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/inkhq/inkwell/internal/clock"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/gateway"
)

// Service handles project lifecycle operations.
type Service struct {
	gw     Gateway
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(gw Gateway, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{gw: gw, clock: clk, logger: logger}
}

// Create creates a new project seeded with a single empty scene, so the
// project never exists in a zero-scene state.
func (s *Service) Create(ctx context.Context, userID, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	proj := &Project{
		ID:           uuid.NewString(),
		Name:         name,
		Scenes:       []scene.Scene{scene.New("Chapter 1", now)},
		Sessions:     nil,
		TotalWords:   0,
		TotalTime:    0,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.gw.CreateProject(ctx, userID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by id.
func (s *Service) Get(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.gw.GetProject(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns summaries of every project owned by the user, most recently
// modified first as stored.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	projects, err := s.gw.ListProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	summaries := make([]Summary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, projects[i].Summarize())
	}
	return summaries, nil
}

// Rename updates the project name. Empty names after trimming are rejected.
func (s *Service) Rename(ctx context.Context, userID, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}

	now := s.clock.Now()
	err := s.gw.ReplaceProjectFields(ctx, userID, id, Fields{
		Name:         &name,
		LastModified: &now,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("renaming project: %w", err)
	}
	return nil
}

// Delete removes a project and all scenes and sessions it owns.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.gw.DeleteProject(ctx, userID, id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// Subscribe relays gateway push notifications as summary lists. Each
// invocation of onChange carries a full authoritative snapshot.
func (s *Service) Subscribe(ctx context.Context, userID string, onChange func([]Summary)) (func(), error) {
	cancel, err := s.gw.SubscribeProjects(ctx, userID, func(projects []Project) {
		summaries := make([]Summary, 0, len(projects))
		for i := range projects {
			summaries = append(summaries, projects[i].Summarize())
		}
		onChange(summaries)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to projects: %w", err)
	}
	return cancel, nil
}
