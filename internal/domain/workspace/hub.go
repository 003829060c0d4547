package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inkhq/inkwell/internal/clock"
	"github.com/inkhq/inkwell/internal/domain/project"
)

// Hub hands out one workspace per user. It is owned by the top-level
// application; nothing else constructs workspaces.
type Hub struct {
	mu     sync.Mutex
	gw     project.Gateway
	clock  clock.Clock
	logger *slog.Logger
	delay  time.Duration
	byUser map[string]*Workspace
}

// NewHub creates a workspace hub. autosaveDelay applies to every workspace
// it creates; zero selects the default debounce window.
func NewHub(gw project.Gateway, clk clock.Clock, autosaveDelay time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		gw:     gw,
		clock:  clk,
		logger: logger,
		delay:  autosaveDelay,
		byUser: make(map[string]*Workspace),
	}
}

// Workspace returns the user's workspace, creating it on first use.
func (h *Hub) Workspace(userID string) *Workspace {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.byUser[userID]
	if !ok {
		w = New(userID, h.gw, h.clock, h.delay, h.logger)
		h.byUser[userID] = w
	}
	return w
}

// Close tears down every workspace, flushing pending autosaves.
func (h *Hub) Close(ctx context.Context) {
	h.mu.Lock()
	workspaces := make([]*Workspace, 0, len(h.byUser))
	for _, w := range h.byUser {
		workspaces = append(workspaces, w)
	}
	h.byUser = make(map[string]*Workspace)
	h.mu.Unlock()

	for _, w := range workspaces {
		w.Close(ctx)
	}
}
