package service

import (
	"errors"
	"testing"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("four labels", func(t *testing.T) {
		got, err := ParseAnalysis("Category: Swimming\nScore: 82/100\nFeedback: Good rotation.\nImprovement Tip: Extend your reach.")
		require.NoError(t, err)
		assert.Equal(t, model.AnalysisResult{
			Category:       "Swimming",
			Score:          "82/100",
			Feedback:       "Good rotation.",
			ImprovementTip: "Extend your reach.",
		}, got)
	})

	t.Run("multi-line feedback ends at the next label", func(t *testing.T) {
		raw := "Category: Tennis\nScore: 70/100\nFeedback:\n- [0:05] - Racket back early\n- [0:12] - Late contact\nImprovement Tip: Split step sooner."
		got, err := ParseAnalysis(raw)
		require.NoError(t, err)
		assert.Equal(t, "- [0:05] - Racket back early\n- [0:12] - Late contact", got.Feedback)
		assert.Equal(t, "Split step sooner.", got.ImprovementTip)
	})

	t.Run("missing improvement tip", func(t *testing.T) {
		raw := "Category: Swimming\nScore: 82/100\nFeedback: Good rotation."
		_, err := ParseAnalysis(raw)
		require.Error(t, err)

		var parseErr *AnalysisParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, raw, parseErr.Raw)
		assert.Contains(t, parseErr.Missing, "Improvement Tip")
		assert.Contains(t, parseErr.UserMessage(), "Sorry, I couldn't parse the analysis from the AI. Raw response:")
		assert.Contains(t, parseErr.UserMessage(), raw)
	})

	t.Run("free text", func(t *testing.T) {
		_, err := ParseAnalysis("Great job out there!")
		var parseErr *AnalysisParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Len(t, parseErr.Missing, 4)
	})
}

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"82/100", "82/100"},
		{"82", "82/100"},
		{"82 / 100", "82/100"},
		{"excellent", "excellent"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeScore(tt.in))
		})
	}
}

func TestParseVideoFeedback(t *testing.T) {
	t.Run("timestamped lines", func(t *testing.T) {
		items := ParseVideoFeedback("- [1:05] - Keep elbow high\n- [12:30] - Good follow-through")
		require.Len(t, items, 2)

		assert.Equal(t, "[01:05]", items[0].TimestampLabel)
		require.NotNil(t, items[0].OffsetSeconds)
		assert.Equal(t, 65, *items[0].OffsetSeconds)
		assert.Equal(t, "Keep elbow high", items[0].Text)

		assert.Equal(t, "[12:30]", items[1].TimestampLabel)
		require.NotNil(t, items[1].OffsetSeconds)
		assert.Equal(t, 750, *items[1].OffsetSeconds)
		assert.Equal(t, "Good follow-through", items[1].Text)
	})

	t.Run("non-matching lines are ignored", func(t *testing.T) {
		items := ParseVideoFeedback("Overall solid.\n- [0:42] - Drive the hips\n- no timestamp here")
		require.Len(t, items, 1)
		assert.Equal(t, 42, *items[0].OffsetSeconds)
	})

	t.Run("free text collapses to one item", func(t *testing.T) {
		items := ParseVideoFeedback("  Smooth stroke overall.  ")
		require.Len(t, items, 1)
		assert.Equal(t, "Smooth stroke overall.", items[0].Text)
		assert.Empty(t, items[0].TimestampLabel)
		assert.Nil(t, items[0].OffsetSeconds)
	})

	t.Run("empty feedback", func(t *testing.T) {
		assert.Empty(t, ParseVideoFeedback("   "))
	})
}

func TestParsePlan_Dietary(t *testing.T) {
	raw := `{"meals":{"breakfast":"Oats","lunch":"Chicken salad","dinner":"Salmon"},"coachMessage":"Here's today's plan!"}`

	reply, err := ParsePlan(model.ModuleDietaryPlan, raw)
	require.NoError(t, err)
	assert.Equal(t, "Here's today's plan!", reply.Message)
	assert.Equal(t, []model.PlanItem{
		{Name: "Breakfast", Detail: "Oats"},
		{Name: "Lunch", Detail: "Chicken salad"},
		{Name: "Dinner", Detail: "Salmon"},
	}, reply.Items)
}

func TestParsePlan_Exercise(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantMsg   string
		wantItems int
		wantErr   error
	}{
		{
			name:      "plain json",
			raw:       `{"exercises":[{"name":"Squats","detail":"3x12"},{"name":"Plank","detail":"60s"}],"coachMessage":"Go!"}`,
			wantMsg:   "Go!",
			wantItems: 2,
		},
		{
			name:      "fenced json",
			raw:       "```json\n{\"exercises\":[{\"name\":\"Lunges\",\"detail\":\"3x10\"}],\"coachMessage\":\"Legs day\"}\n```",
			wantMsg:   "Legs day",
			wantItems: 1,
		},
		{
			name:      "missing coach message",
			raw:       `{"exercises":[{"name":"Burpees","detail":"20"}]}`,
			wantMsg:   DefaultPlanMessage,
			wantItems: 1,
		},
		{
			name:    "no exercises",
			raw:     `{"coachMessage":"Rest today."}`,
			wantMsg: "Rest today.",
		},
		{
			name:    "nameless exercise",
			raw:     `{"exercises":[{"name":"","detail":"3x10"}],"coachMessage":"Hmm"}`,
			wantMsg: "Hmm",
			wantErr: ErrIncompletePlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := ParsePlan(model.ModuleExercisePlan, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, reply.Items)
			} else {
				require.NoError(t, err)
				assert.Len(t, reply.Items, tt.wantItems)
			}
			assert.Equal(t, tt.wantMsg, reply.Message)
		})
	}
}

func TestParsePlan_ExerciseListPresence(t *testing.T) {
	t.Run("missing list carries no plan", func(t *testing.T) {
		reply, err := ParsePlan(model.ModuleExercisePlan, `{"coachMessage":"Rest today."}`)
		require.NoError(t, err)
		assert.Nil(t, reply.Items)
	})

	t.Run("null list carries no plan", func(t *testing.T) {
		reply, err := ParsePlan(model.ModuleExercisePlan, `{"exercises":null,"coachMessage":"Rest today."}`)
		require.NoError(t, err)
		assert.Nil(t, reply.Items)
	})

	t.Run("empty list is an empty plan", func(t *testing.T) {
		reply, err := ParsePlan(model.ModuleExercisePlan, `{"exercises":[],"coachMessage":"Rest today."}`)
		require.NoError(t, err)
		assert.NotNil(t, reply.Items)
		assert.Empty(t, reply.Items)
		assert.Equal(t, "Rest today.", reply.Message)
	})
}

func TestParsePlan_InvalidJSON(t *testing.T) {
	reply, err := ParsePlan(model.ModuleDietaryPlan, "Sure! Eat oats for breakfast.")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncompletePlan)
	assert.Empty(t, reply.Message)
	assert.Empty(t, reply.Items)
}

func TestParsePlan_IncompleteMeals(t *testing.T) {
	reply, err := ParsePlan(model.ModuleDietaryPlan, `{"meals":{"breakfast":"Oats","lunch":""},"coachMessage":"Eat up"}`)
	assert.ErrorIs(t, err, ErrIncompletePlan)
	assert.Equal(t, "Eat up", reply.Message)
	assert.Empty(t, reply.Items)
}

func TestParsePlan_UnstructuredModule(t *testing.T) {
	_, err := ParsePlan(model.ModuleGeneral, `{}`)
	assert.ErrorIs(t, err, ErrUnknownModule)
}
