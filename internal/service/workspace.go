package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"go.uber.org/zap"
)

// WorkspaceState is a read-only view of a workspace's selections
type WorkspaceState struct {
	ID           string                `json:"id"`
	Owner        string                `json:"owner"`
	Sport        string                `json:"sport"`
	Persona      model.Persona         `json:"persona"`
	HasBodyStats bool                  `json:"hasBodyStats"`
	BodyPart     string                `json:"bodyPart,omitempty"`
	LastAnalysis *model.AnalysisResult `json:"lastAnalysis,omitempty"`
}

// Workspace holds one user's sport, persona, auxiliary context, live sessions and trackers.
// Sessions are discarded whenever the context they were built from changes.
type Workspace struct {
	id             string
	owner          string
	assistant      Assistant
	analysis       *AnalysisService
	dashboard      *DashboardService
	requestTimeout time.Duration
	logger         *zap.Logger

	mu           sync.Mutex
	sport        string
	persona      model.Persona
	bodyStats    *model.BodyStats
	bodyPart     string
	lastAnalysis *model.AnalysisResult
	generation   uint64
	sessions     map[model.Module]*ConversationSession
	trackers     map[model.Module]*PlanTracker
}

func newWorkspace(id, owner string, assistant Assistant, analysis *AnalysisService, dashboard *DashboardService, requestTimeout time.Duration, logger *zap.Logger) *Workspace {
	logger = logger.With(zap.String("workspace_id", id))
	return &Workspace{
		id:             id,
		owner:          owner,
		assistant:      assistant,
		analysis:       analysis,
		dashboard:      dashboard,
		requestTimeout: requestTimeout,
		logger:         logger,
		persona:        model.PersonaFriendlyMentor,
		sessions:       make(map[model.Module]*ConversationSession),
		trackers: map[model.Module]*PlanTracker{
			model.ModuleExercisePlan: NewPlanTracker(model.ModuleExercisePlan, logger),
			model.ModuleDietaryPlan:  NewPlanTracker(model.ModuleDietaryPlan, logger),
		},
	}
}

// ID returns the workspace identifier
func (w *Workspace) ID() string {
	return w.id
}

// State returns the current selections
func (w *Workspace) State() WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WorkspaceState{
		ID:           w.id,
		Owner:        w.owner,
		Sport:        w.sport,
		Persona:      w.persona,
		HasBodyStats: w.bodyStats != nil,
		BodyPart:     w.bodyPart,
		LastAnalysis: w.lastAnalysis,
	}
}

// SelectSport starts over for a new sport: sessions, analysis, plans and auxiliary context are cleared
func (w *Workspace) SelectSport(sport string) error {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return model.ErrMissingSport
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if sport == w.sport {
		return nil
	}
	w.sport = sport
	w.lastAnalysis = nil
	w.bodyStats = nil
	w.bodyPart = ""
	w.generation++
	w.discardAllLocked()
	for _, t := range w.trackers {
		t.Reset()
	}

	w.logger.Info("sport selected", zap.String("sport", sport))
	return nil
}

// SelectPersona changes the coaching tone; every live session is rebuilt on next use
func (w *Workspace) SelectPersona(persona string) model.Persona {
	p := model.ParsePersona(persona)

	w.mu.Lock()
	defer w.mu.Unlock()

	if p != w.persona {
		w.persona = p
		w.discardAllLocked()
		w.logger.Info("persona selected", zap.String("persona", string(p)))
	}
	return p
}

// SetBodyStats records the dietary context and discards the dietary session
func (w *Workspace) SetBodyStats(height, weight string, image *model.InlineMedia) error {
	stats := model.BodyStats{
		Height: strings.TrimSpace(height),
		Weight: strings.TrimSpace(weight),
		Image:  image,
	}
	if stats.Height == "" || stats.Weight == "" {
		return model.ErrMissingBodyStats
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.bodyStats = &stats
	w.discardLocked(model.ModuleDietaryPlan)
	w.logger.Info("body stats recorded", zap.Bool("with_image", image != nil))
	return nil
}

// SetRecoveryFocus records the injured body part and discards the recovery session
func (w *Workspace) SetRecoveryFocus(bodyPart string) (string, error) {
	part, err := model.ParseBodyPart(bodyPart)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if part != w.bodyPart {
		w.bodyPart = part
		w.discardLocked(model.ModuleInjuryRecoveryPlan)
		w.logger.Info("recovery focus recorded", zap.String("body_part", part))
	}
	return part, nil
}

// Session makes module the active one and returns its session, creating it when absent.
// Sessions of every other module are discarded; plan trackers are kept.
// Modules whose required context is missing return ErrModuleNotReady.
func (w *Workspace) Session(module model.Module) (*ConversationSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	mc, err := model.NewModuleContext(module, w.sport, w.persona, w.auxiliaryLocked(module))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModuleNotReady, err)
	}

	for m := range w.sessions {
		if m != module {
			w.discardLocked(m)
		}
	}
	if s, ok := w.sessions[module]; ok {
		return s, nil
	}

	// Plans arrive under the session lock and only while the session is live.
	// Discarding takes that lock before trackers are reset, so a retired
	// session can never reach a tracker.
	var onPlan PlanHandler
	if tracker := w.trackers[module]; tracker != nil {
		onPlan = func(plan model.Plan) {
			tracker.ReceivePlan(plan.Items)
		}
	}
	session := NewConversationSession(mc, w.assistant, onPlan, w.requestTimeout, w.logger)
	w.sessions[module] = session
	return session, nil
}

// Analyze scores the media for the selected sport and makes the result the
// performance session's context
func (w *Workspace) Analyze(ctx context.Context, media model.InlineMedia) (*AnalysisOutcome, error) {
	w.mu.Lock()
	sport := w.sport
	generation := w.generation
	w.mu.Unlock()

	if sport == "" {
		return nil, fmt.Errorf("%w: %w", ErrModuleNotReady, model.ErrMissingSport)
	}

	outcome, err := w.analysis.Analyze(ctx, media, sport)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if generation != w.generation {
		w.logger.Info("dropping analysis for a previous sport", zap.String("sport", sport))
		return nil, ErrSessionDisposed
	}
	result := outcome.Result
	w.lastAnalysis = &result
	w.discardLocked(model.ModulePerformanceAnalysis)
	w.discardLocked(model.ModuleUnifiedDashboard)
	return outcome, nil
}

// Tracker returns the plan tracker of an ExercisePlan or DietaryPlan module
func (w *Workspace) Tracker(module model.Module) (*PlanTracker, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.trackers[module]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no plan", ErrUnknownModule, module)
	}
	return t, nil
}

// Dashboard returns the current dashboard metrics
func (w *Workspace) Dashboard() model.DashboardMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dashboardLocked()
}

// Close disposes every live session
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.discardAllLocked()
}

func (w *Workspace) dashboardLocked() model.DashboardMetrics {
	return w.dashboard.Compute(w.lastAnalysis, w.trackers[model.ModuleExercisePlan], w.trackers[model.ModuleDietaryPlan])
}

func (w *Workspace) auxiliaryLocked(module model.Module) model.Auxiliary {
	switch module {
	case model.ModulePerformanceAnalysis:
		return model.AnalysisContext{Previous: w.lastAnalysis}
	case model.ModuleDietaryPlan:
		if w.bodyStats == nil {
			return nil
		}
		return *w.bodyStats
	case model.ModuleInjuryRecoveryPlan:
		return model.RecoveryFocus{BodyPart: w.bodyPart}
	case model.ModuleUnifiedDashboard:
		return model.DashboardContext{Metrics: w.dashboardLocked()}
	default:
		return nil
	}
}

func (w *Workspace) discardLocked(module model.Module) {
	if s, ok := w.sessions[module]; ok {
		s.Dispose()
		delete(w.sessions, module)
	}
}

func (w *Workspace) discardAllLocked() {
	for module := range w.sessions {
		w.discardLocked(module)
	}
}
