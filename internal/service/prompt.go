package service

import (
	"encoding/json"
	"fmt"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
)

const baseInstruction = "You are an AI sports coach. "

var personaClauses = map[model.Persona]string{
	model.PersonaStrictTrainer: "You are a Strict Trainer. Your tone is commanding, firm, and results-focused. " +
		"You have high expectations, offer minimal praise, and use tough love to push the user to their limits.",
	model.PersonaOlympicPro: "You are an Olympic Pro coach. Your tone is professional, analytical, and strategic. " +
		"You are data-driven and focused on peak performance and optimization.",
	model.PersonaChillBuddy: "You are a Chill Buddy. Your tone is casual, relaxed, and friendly. " +
		"You keep fitness fun and stress-free with a low-pressure approach.",
	model.PersonaFriendlyMentor: "You are Coach Nova, a Friendly Mentor. Your tone is encouraging, supportive, warm, and patient. " +
		"You celebrate wins and help the user through setbacks. Use emojis lightly for energy and clarity (e.g., 🕒 🥣 💧).",
}

// BuildContext derives the behavioral instruction and optional reply schema for a session.
// The result depends only on mc.
func BuildContext(mc model.ModuleContext) (string, *model.OutputSchema) {
	instruction := personaInstruction(mc.Persona) + "\n\n" + moduleInstruction(mc)

	switch mc.Module {
	case model.ModuleExercisePlan:
		return instruction, ExercisePlanSchema()
	case model.ModuleDietaryPlan:
		return instruction, DietaryPlanSchema()
	default:
		return instruction, nil
	}
}

func personaInstruction(p model.Persona) string {
	clause, ok := personaClauses[p]
	if !ok {
		clause = personaClauses[model.PersonaFriendlyMentor]
	}
	return baseInstruction + clause
}

func moduleInstruction(mc model.ModuleContext) string {
	switch mc.Module {
	case model.ModuleUnifiedDashboard:
		metrics, _ := mc.DashboardMetrics()
		snapshot, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			snapshot = []byte("{}")
		}
		return fmt.Sprintf(`Your current task is to act as a holistic coach for a %s athlete, analyzing their unified dashboard.
- The user's data is: %s.
- Answer questions about their overall score, trends, and connections between modules.
- Provide clear, data-driven explanations and actionable advice based on their complete profile.`, mc.Sport, snapshot)

	case model.ModulePerformanceAnalysis:
		if prev := mc.PreviousAnalysis(); prev != nil {
			return fmt.Sprintf("IMPORTANT CONTEXT: The user just received the following analysis on their %s performance:\n%s\nBase your conversation on this feedback.",
				mc.Sport, prev.String())
		}
		return fmt.Sprintf("Your current task is to act as a performance analyst for %s. "+
			"The user has not uploaded any media yet. Answer general technique questions and encourage them to upload an image or video for a detailed analysis.", mc.Sport)

	case model.ModuleExercisePlan:
		return fmt.Sprintf(`Your current task is to act as a strength and conditioning coach for %s.
- When the user asks for a workout, provide a plan for ONLY ONE DAY.
- Each day should include 3-5 relevant exercises.
- Provide a coachMessage in your defined persona.
- Keep the instructions realistic, simple, and varied across days. Do not repeat workouts.`, mc.Sport)

	case model.ModuleDietaryPlan:
		stats, _ := mc.BodyStats()
		return fmt.Sprintf(`Your current task is to act as a sports nutritionist for a %s athlete.
- The user has provided their details: Height %s, Weight %s.
- They may also provide a body image with their first message only. Use this information to estimate their physique and needs.
- When the user asks for a meal plan, provide a plan for ONLY ONE DAY.
- Each day should show Breakfast, Lunch, and Dinner.
- Ensure the nutrition aligns with %s.
- Provide a coachMessage in your defined persona.`, mc.Sport, stats.Height, stats.Weight, mc.Sport)

	case model.ModuleInjuryRecoveryPlan:
		return fmt.Sprintf(`Your current task is to act as a physical recovery specialist for a %s athlete.
- The user has indicated an issue with their %s. All advice must be safe for this condition.
- When the user asks for a recovery plan, provide a simple plan for the day.
- The plan should include 2-4 light recovery exercises and 1-2 general recovery tips.
- IMPORTANT: Every recovery plan you give must include a disclaimer to consult a doctor or physical therapist for serious injuries.`, mc.Sport, mc.BodyPart())

	default:
		return fmt.Sprintf("Your role is to be a general AI coach for %s. Answer general training questions and provide motivation.", mc.Sport)
	}
}

// ExercisePlanSchema requires a coachMessage and a list of {name, detail} exercises
func ExercisePlanSchema() *model.OutputSchema {
	return &model.OutputSchema{
		Name:        "exercise_plan",
		Description: "A single-day workout plan with a message from the coach.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"exercises": map[string]any{
					"type":        "array",
					"description": "A list of exercises for the daily workout plan.",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":   map[string]any{"type": "string", "description": "Name of the exercise."},
							"detail": map[string]any{"type": "string", "description": "Details like reps, sets, or duration."},
						},
						"required":             []string{"name", "detail"},
						"additionalProperties": false,
					},
				},
				"coachMessage": map[string]any{
					"type":        "string",
					"description": "A conversational message for the user accompanying the plan, matching the persona.",
				},
			},
			"required":             []string{"exercises", "coachMessage"},
			"additionalProperties": false,
		},
	}
}

// DietaryPlanSchema requires a coachMessage and a meals object with breakfast, lunch and dinner
func DietaryPlanSchema() *model.OutputSchema {
	return &model.OutputSchema{
		Name:        "dietary_plan",
		Description: "A single-day meal plan with a message from the coach.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"meals": map[string]any{
					"type":        "object",
					"description": "An object containing the meal descriptions for the day.",
					"properties": map[string]any{
						"breakfast": map[string]any{"type": "string", "description": "Description of the breakfast meal."},
						"lunch":     map[string]any{"type": "string", "description": "Description of the lunch meal."},
						"dinner":    map[string]any{"type": "string", "description": "Description of the dinner meal."},
					},
					"required":             []string{"breakfast", "lunch", "dinner"},
					"additionalProperties": false,
				},
				"coachMessage": map[string]any{
					"type":        "string",
					"description": "A conversational message for the user accompanying the plan, matching the persona.",
				},
			},
			"required":             []string{"meals", "coachMessage"},
			"additionalProperties": false,
		},
	}
}
