package service

import (
	"fmt"
	"strings"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
)

// Greeting returns the opening assistant message for a session. It never calls the assistant.
func Greeting(mc model.ModuleContext) string {
	switch mc.Module {
	case model.ModuleUnifiedDashboard:
		return fmt.Sprintf("Welcome to your Unified Dashboard for %s! I'm your AI coach. I've analyzed all your data. "+
			"Ask me anything, like \"How can I improve my overall score?\" or \"Why did my performance drop last week?\" Let's get started!", mc.Sport)

	case model.ModulePerformanceAnalysis:
		if prev := mc.PreviousAnalysis(); prev != nil {
			return fmt.Sprintf("I've analyzed your %s performance!\n\nYou scored %s. My main feedback is: \"%s\"\n\nMy tip for you is to: %s\n\nAsk me anything about this analysis!",
				prev.Category, prev.Score, strings.TrimSpace(prev.Feedback), prev.ImprovementTip)
		}
		return "Upload your performance, and I'll give you a detailed analysis. You can also ask me general questions about training!"

	case model.ModuleExercisePlan:
		return fmt.Sprintf("Ready to train for %s? I'm here to help. To get started, just ask for \"Day 1\" or \"today's workout.\" "+
			"Your plan will appear on the left. Let's get stronger! 💪", mc.Sport)

	case model.ModuleDietaryPlan:
		return fmt.Sprintf("Let's fuel your %s performance! I've reviewed your details. To get your first meal plan, ask for \"Day 1\" or "+
			"\"what should I eat today?\". Your meal tracker will appear on the left. 🍎", mc.Sport)

	case model.ModuleInjuryRecoveryPlan:
		return fmt.Sprintf("Let's focus on recovery for your %s. I'm here to help. Ask for \"today's recovery plan\" to get some gentle "+
			"exercises and tips. Remember to listen to your body!", mc.BodyPart())

	default:
		return "Select a sport, upload your performance, and I'll give you a detailed analysis. You can also ask me general questions about training!"
	}
}
