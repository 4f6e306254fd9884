package model

import (
	"errors"
	"fmt"
	"strings"
)

// Auxiliary is module-specific context threaded into a session's instruction.
// Each variant belongs to exactly one module.
type Auxiliary interface {
	Module() Module
}

// AnalysisContext carries the previous analysis for a PerformanceAnalysis session
type AnalysisContext struct {
	Previous *AnalysisResult
}

func (AnalysisContext) Module() Module { return ModulePerformanceAnalysis }

// BodyStats carries the athlete's measurements for a DietaryPlan session
type BodyStats struct {
	Height string
	Weight string
	Image  *InlineMedia
}

func (BodyStats) Module() Module { return ModuleDietaryPlan }

// RecoveryFocus carries the injured body part for an InjuryRecoveryPlan session
type RecoveryFocus struct {
	BodyPart string
}

func (RecoveryFocus) Module() Module { return ModuleInjuryRecoveryPlan }

// DashboardContext carries the metrics snapshot for a UnifiedDashboard session
type DashboardContext struct {
	Metrics DashboardMetrics
}

func (DashboardContext) Module() Module { return ModuleUnifiedDashboard }

var (
	ErrMissingSport     = errors.New("sport is required")
	ErrMissingBodyStats = errors.New("height and weight are required for the dietary plan")
	ErrMissingBodyPart  = errors.New("body part is required for the injury recovery plan")
)

// ModuleContext describes what a conversation session is for. It is immutable once built.
type ModuleContext struct {
	Module  Module
	Sport   string
	Persona Persona
	Aux     Auxiliary
}

// NewModuleContext validates the combination and returns the context.
// DietaryPlan and InjuryRecoveryPlan require their auxiliary context.
func NewModuleContext(module Module, sport string, persona Persona, aux Auxiliary) (ModuleContext, error) {
	if _, ok := moduleSlugs[module]; !ok {
		return ModuleContext{}, fmt.Errorf("unknown module: %q", module)
	}
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return ModuleContext{}, ErrMissingSport
	}
	if aux != nil && aux.Module() != module {
		return ModuleContext{}, fmt.Errorf("auxiliary context for %s cannot be used with %s", aux.Module(), module)
	}

	switch module {
	case ModuleDietaryPlan:
		stats, ok := aux.(BodyStats)
		if !ok || strings.TrimSpace(stats.Height) == "" || strings.TrimSpace(stats.Weight) == "" {
			return ModuleContext{}, ErrMissingBodyStats
		}
	case ModuleInjuryRecoveryPlan:
		focus, ok := aux.(RecoveryFocus)
		if !ok || strings.TrimSpace(focus.BodyPart) == "" {
			return ModuleContext{}, ErrMissingBodyPart
		}
	}

	return ModuleContext{
		Module:  module,
		Sport:   sport,
		Persona: ParsePersona(string(persona)),
		Aux:     aux,
	}, nil
}

// PreviousAnalysis returns the prior analysis of a PerformanceAnalysis context, if any
func (c ModuleContext) PreviousAnalysis() *AnalysisResult {
	if a, ok := c.Aux.(AnalysisContext); ok {
		return a.Previous
	}
	return nil
}

// BodyStats returns the dietary auxiliary context
func (c ModuleContext) BodyStats() (BodyStats, bool) {
	s, ok := c.Aux.(BodyStats)
	return s, ok
}

// BodyPart returns the recovery focus, or an empty string
func (c ModuleContext) BodyPart() string {
	if f, ok := c.Aux.(RecoveryFocus); ok {
		return f.BodyPart
	}
	return ""
}

// DashboardMetrics returns the dashboard snapshot
func (c ModuleContext) DashboardMetrics() (DashboardMetrics, bool) {
	d, ok := c.Aux.(DashboardContext)
	return d.Metrics, ok
}

// FirstTurnMedia returns the image that may accompany the first dietary turn
func (c ModuleContext) FirstTurnMedia() *InlineMedia {
	if s, ok := c.Aux.(BodyStats); ok {
		return s.Image
	}
	return nil
}

var bodyParts = []string{"Shoulder", "Elbow", "Knee", "Ankle", "Back", "Wrist", "Neck"}

// BodyParts lists the selectable recovery focus areas
func BodyParts() []string {
	parts := make([]string, len(bodyParts))
	copy(parts, bodyParts)
	return parts
}

// ParseBodyPart resolves a body part name case-insensitively
func ParseBodyPart(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, p := range bodyParts {
		if strings.EqualFold(s, p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMissingBodyPart, s)
}
