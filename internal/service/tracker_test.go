package service

import (
	"testing"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func meals() []model.PlanItem {
	return []model.PlanItem{
		{Name: "Breakfast", Detail: "Oats"},
		{Name: "Lunch", Detail: "Chicken salad"},
		{Name: "Dinner", Detail: "Salmon"},
	}
}

func TestPlanTracker_StartsEmpty(t *testing.T) {
	tracker := NewPlanTracker(model.ModuleDietaryPlan, zap.NewNop())
	assert.True(t, tracker.Empty())

	_, ok := tracker.CompletionPercent()
	assert.False(t, ok)

	_, err := tracker.ToggleItem(0)
	assert.ErrorIs(t, err, ErrItemIndex)
}

func TestPlanTracker_ToggleFlipsOnlyOneItem(t *testing.T) {
	tracker := NewPlanTracker(model.ModuleDietaryPlan, zap.NewNop())
	tracker.ReceivePlan(meals())

	item, err := tracker.ToggleItem(1)
	require.NoError(t, err)
	assert.True(t, item.Completed)

	plan := tracker.Plan()
	assert.False(t, plan.Items[0].Completed)
	assert.True(t, plan.Items[1].Completed)
	assert.False(t, plan.Items[2].Completed)

	pct, ok := tracker.CompletionPercent()
	assert.True(t, ok)
	assert.Equal(t, 33, pct)

	item, err = tracker.ToggleItem(1)
	require.NoError(t, err)
	assert.False(t, item.Completed)
}

func TestPlanTracker_ReceivePlanResetsCompletion(t *testing.T) {
	tracker := NewPlanTracker(model.ModuleDietaryPlan, zap.NewNop())
	tracker.ReceivePlan(meals())
	for i := 0; i < 3; i++ {
		_, err := tracker.ToggleItem(i)
		require.NoError(t, err)
	}

	incoming := meals()
	incoming[0].Completed = true
	tracker.ReceivePlan(incoming)

	for _, item := range tracker.Plan().Items {
		assert.False(t, item.Completed)
	}
}

func TestPlanTracker_PlanIsACopy(t *testing.T) {
	tracker := NewPlanTracker(model.ModuleExercisePlan, zap.NewNop())
	tracker.ReceivePlan([]model.PlanItem{{Name: "Squats", Detail: "3x12"}})

	plan := tracker.Plan()
	plan.Items[0].Completed = true

	assert.False(t, tracker.Plan().Items[0].Completed)
}

// Property 4: toggling index i changes exactly item i
func TestProperty_ToggleIsolated(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggle flips one item and leaves the rest", prop.ForAll(
		func(size int, index int) bool {
			items := make([]model.PlanItem, size)
			for i := range items {
				items[i] = model.PlanItem{Name: "item", Detail: "detail"}
			}
			tracker := NewPlanTracker(model.ModuleExercisePlan, zap.NewNop())
			tracker.ReceivePlan(items)

			index = index % size
			if _, err := tracker.ToggleItem(index); err != nil {
				return false
			}
			for i, item := range tracker.Plan().Items {
				if item.Completed != (i == index) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
