package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrWorkspaceNotFound is returned for unknown or signed-out workspaces
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceRegistry keeps signed-in workspaces in memory
type WorkspaceRegistry struct {
	assistant      Assistant
	analysis       *AnalysisService
	dashboard      *DashboardService
	requestTimeout time.Duration
	logger         *zap.Logger

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewWorkspaceRegistry creates a new WorkspaceRegistry
func NewWorkspaceRegistry(assistant Assistant, baseline DashboardBaseline, requestTimeout time.Duration, logger *zap.Logger) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		assistant:      assistant,
		analysis:       NewAnalysisService(assistant, requestTimeout, logger),
		dashboard:      NewDashboardService(baseline, logger),
		requestTimeout: requestTimeout,
		logger:         logger,
		workspaces:     make(map[string]*Workspace),
	}
}

// SignIn creates a workspace for owner. Credentials are not checked.
func (r *WorkspaceRegistry) SignIn(owner string) *Workspace {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = "athlete"
	}

	w := newWorkspace(uuid.New().String(), owner, r.assistant, r.analysis, r.dashboard, r.requestTimeout, r.logger)

	r.mu.Lock()
	r.workspaces[w.ID()] = w
	r.mu.Unlock()

	r.logger.Info("workspace created", zap.String("workspace_id", w.ID()), zap.String("owner", owner))
	return w
}

// Get returns a workspace by id
func (r *WorkspaceRegistry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	return w, nil
}

// SignOut closes and forgets a workspace
func (r *WorkspaceRegistry) SignOut(id string) error {
	r.mu.Lock()
	w, ok := r.workspaces[id]
	delete(r.workspaces, id)
	r.mu.Unlock()

	if !ok {
		return ErrWorkspaceNotFound
	}
	w.Close()
	r.logger.Info("workspace closed", zap.String("workspace_id", id))
	return nil
}

// Len returns the number of signed-in workspaces
func (r *WorkspaceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// Close signs out every workspace
func (r *WorkspaceRegistry) Close() {
	r.mu.Lock()
	workspaces := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()

	for _, w := range workspaces {
		w.Close()
	}
	r.logger.Info("all workspaces closed", zap.Int("count", len(workspaces)))
}
