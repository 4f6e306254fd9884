package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"go.uber.org/zap"
)

// Overall score weights
const (
	performanceWeight = 0.35
	exerciseWeight    = 0.30
	dietWeight        = 0.20
	recoveryWeight    = 0.15
)

// DashboardBaseline holds the metric values used until live data exists
type DashboardBaseline struct {
	Performance int
	Exercise    int
	Diet        int
	Recovery    int
	Streak      int
}

// CompletionSource reports plan completion as a percentage
type CompletionSource interface {
	CompletionPercent() (int, bool)
}

// DashboardService aggregates module state into the unified dashboard snapshot
type DashboardService struct {
	baseline DashboardBaseline
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(baseline DashboardBaseline, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		baseline: baseline,
		logger:   logger,
	}
}

// Compute builds the metrics snapshot; live values override the baseline
func (s *DashboardService) Compute(analysis *model.AnalysisResult, exercise, diet CompletionSource) model.DashboardMetrics {
	m := model.DashboardMetrics{
		PerformanceScore:   s.baseline.Performance,
		ExerciseCompletion: s.baseline.Exercise,
		DietAdherence:      s.baseline.Diet,
		RecoveryStatus:     s.baseline.Recovery,
		Streak:             s.baseline.Streak,
	}

	if analysis != nil {
		if score, ok := scoreValue(analysis.Score); ok {
			m.PerformanceScore = score
		} else {
			s.logger.Warn("analysis score is not numeric, keeping baseline", zap.String("score", analysis.Score))
		}
	}
	if exercise != nil {
		if pct, ok := exercise.CompletionPercent(); ok {
			m.ExerciseCompletion = pct
		}
	}
	if diet != nil {
		if pct, ok := diet.CompletionPercent(); ok {
			m.DietAdherence = pct
		}
	}

	m.OverallScore = OverallScore(m)
	return m
}

// OverallScore is the weighted blend of the four module metrics
func OverallScore(m model.DashboardMetrics) int {
	return int(math.Round(
		float64(m.PerformanceScore)*performanceWeight +
			float64(m.ExerciseCompletion)*exerciseWeight +
			float64(m.DietAdherence)*dietWeight +
			float64(m.RecoveryStatus)*recoveryWeight,
	))
}

// scoreValue reads the leading number of an "NN/100" score, clamped to 0..100
func scoreValue(score string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(score), "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return min(max(n, 0), 100), true
}
