package service

import (
	"testing"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var testBaseline = DashboardBaseline{Performance: 85, Exercise: 92, Diet: 78, Recovery: 95, Streak: 15}

func TestDashboardService_Compute_Baseline(t *testing.T) {
	service := NewDashboardService(testBaseline, zap.NewNop())

	m := service.Compute(nil, nil, nil)

	assert.Equal(t, model.DashboardMetrics{
		OverallScore:       87,
		PerformanceScore:   85,
		ExerciseCompletion: 92,
		DietAdherence:      78,
		RecoveryStatus:     95,
		Streak:             15,
	}, m)
}

func TestDashboardService_Compute_LiveValues(t *testing.T) {
	service := NewDashboardService(testBaseline, zap.NewNop())

	exercise := NewPlanTracker(model.ModuleExercisePlan, zap.NewNop())
	exercise.ReceivePlan([]model.PlanItem{{Name: "Squats"}, {Name: "Plank"}})
	_, _ = exercise.ToggleItem(0)

	emptyDiet := NewPlanTracker(model.ModuleDietaryPlan, zap.NewNop())

	m := service.Compute(&model.AnalysisResult{Score: "60/100"}, exercise, emptyDiet)

	assert.Equal(t, 60, m.PerformanceScore)
	assert.Equal(t, 50, m.ExerciseCompletion)
	assert.Equal(t, 78, m.DietAdherence)
	// 0.35*60 + 0.30*50 + 0.20*78 + 0.15*95 = 65.85
	assert.Equal(t, 66, m.OverallScore)
}

func TestDashboardService_Compute_NonNumericScoreKeepsBaseline(t *testing.T) {
	service := NewDashboardService(testBaseline, zap.NewNop())

	m := service.Compute(&model.AnalysisResult{Score: "great"}, nil, nil)
	assert.Equal(t, 85, m.PerformanceScore)
}

func TestScoreValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"82/100", 82, true},
		{" 7 / 100", 7, true},
		{"140/100", 100, true},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := scoreValue(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
