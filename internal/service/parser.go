package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
)

var (
	categoryPattern = regexp.MustCompile(`(?m)^[ \t]*Category:[ \t]*(.*)$`)
	scorePattern    = regexp.MustCompile(`(?m)^[ \t]*Score:[ \t]*(.*)$`)
	feedbackPattern = regexp.MustCompile(`(?ms)^[ \t]*Feedback:\s*(.*?)\s*^[ \t]*Improvement Tip:`)
	tipPattern      = regexp.MustCompile(`(?m)^[ \t]*Improvement Tip:[ \t]*(.*)$`)

	scoreValuePattern = regexp.MustCompile(`^(\d{1,3})(?:\s*/\s*100)?$`)
	timestampPattern  = regexp.MustCompile(`^-\s*\[(\d{1,2}):(\d{2})\]\s*-\s*(.*)$`)
)

// ErrIncompletePlan is returned when a structured reply parses as JSON but its plan is malformed
var ErrIncompletePlan = errors.New("plan reply is incomplete")

// DefaultPlanMessage is shown when a structured reply carries no coachMessage
const DefaultPlanMessage = "Here is your plan!"

// AnalysisParseError reports a performance analysis reply without the required labels
type AnalysisParseError struct {
	Raw     string
	Missing []string
}

func (e *AnalysisParseError) Error() string {
	return fmt.Sprintf("analysis reply is missing labels: %s", strings.Join(e.Missing, ", "))
}

// UserMessage renders the failure for display, raw reply included
func (e *AnalysisParseError) UserMessage() string {
	return fmt.Sprintf("Sorry, I couldn't parse the analysis from the AI. Raw response:\n\n\"%s\"", e.Raw)
}

// ParseAnalysis extracts the four labeled fields of a performance analysis reply.
// Any missing label yields an *AnalysisParseError.
func ParseAnalysis(raw string) (model.AnalysisResult, error) {
	var missing []string
	find := func(p *regexp.Regexp, label string) string {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			missing = append(missing, label)
			return ""
		}
		return strings.TrimSpace(m[1])
	}

	result := model.AnalysisResult{
		Category:       find(categoryPattern, "Category"),
		Score:          normalizeScore(find(scorePattern, "Score")),
		Feedback:       find(feedbackPattern, "Feedback"),
		ImprovementTip: find(tipPattern, "Improvement Tip"),
	}
	if len(missing) > 0 {
		return model.AnalysisResult{}, &AnalysisParseError{Raw: raw, Missing: missing}
	}
	return result, nil
}

// normalizeScore rewrites bare or spaced scores as "NN/100"; anything else is kept as given
func normalizeScore(score string) string {
	m := scoreValuePattern.FindStringSubmatch(score)
	if m == nil {
		return score
	}
	return m[1] + "/100"
}

// ParseVideoFeedback splits feedback into "- [MM:SS] - text" items.
// Free-text feedback with no such lines becomes a single unlabeled item.
func ParseVideoFeedback(feedback string) []model.FeedbackItem {
	var items []model.FeedbackItem
	for _, line := range strings.Split(feedback, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		m := timestampPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		offset := minutes*60 + seconds
		items = append(items, model.FeedbackItem{
			TimestampLabel: fmt.Sprintf("[%02d:%02d]", minutes, seconds),
			OffsetSeconds:  &offset,
			Text:           strings.TrimSpace(m[3]),
		})
	}

	if len(items) == 0 {
		if text := strings.TrimSpace(feedback); text != "" {
			return []model.FeedbackItem{{Text: text}}
		}
	}
	return items
}

// PlanReply is a parsed structured reply: the text to display and the plan items.
// Nil Items means the reply carried no plan; an empty slice replaces the plan with nothing.
type PlanReply struct {
	Message string
	Items   []model.PlanItem
}

type exercisePlanReply struct {
	Exercises []struct {
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"exercises"`
	CoachMessage string `json:"coachMessage"`
}

type dietaryPlanReply struct {
	Meals *struct {
		Breakfast string `json:"breakfast"`
		Lunch     string `json:"lunch"`
		Dinner    string `json:"dinner"`
	} `json:"meals"`
	CoachMessage string `json:"coachMessage"`
}

// ParsePlan decodes an ExercisePlan or DietaryPlan reply.
// A JSON failure returns an empty reply. A malformed plan returns the coach message with
// ErrIncompletePlan and no items.
func ParsePlan(module model.Module, raw string) (PlanReply, error) {
	body := stripCodeFence(raw)

	switch module {
	case model.ModuleExercisePlan:
		var r exercisePlanReply
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return PlanReply{}, fmt.Errorf("failed to unmarshal exercise plan: %w", err)
		}
		reply := PlanReply{Message: coachMessage(r.CoachMessage)}
		items := make([]model.PlanItem, 0, len(r.Exercises))
		for i, e := range r.Exercises {
			if strings.TrimSpace(e.Name) == "" {
				return reply, fmt.Errorf("%w: exercise %d has no name", ErrIncompletePlan, i)
			}
			items = append(items, model.PlanItem{Name: strings.TrimSpace(e.Name), Detail: strings.TrimSpace(e.Detail)})
		}
		if r.Exercises != nil {
			reply.Items = items
		}
		return reply, nil

	case model.ModuleDietaryPlan:
		var r dietaryPlanReply
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return PlanReply{}, fmt.Errorf("failed to unmarshal dietary plan: %w", err)
		}
		reply := PlanReply{Message: coachMessage(r.CoachMessage)}
		if r.Meals == nil {
			return reply, nil
		}
		meals := []model.PlanItem{
			{Name: "Breakfast", Detail: strings.TrimSpace(r.Meals.Breakfast)},
			{Name: "Lunch", Detail: strings.TrimSpace(r.Meals.Lunch)},
			{Name: "Dinner", Detail: strings.TrimSpace(r.Meals.Dinner)},
		}
		for _, m := range meals {
			if m.Detail == "" {
				return reply, fmt.Errorf("%w: %s is missing", ErrIncompletePlan, strings.ToLower(m.Name))
			}
		}
		reply.Items = meals
		return reply, nil

	default:
		return PlanReply{}, fmt.Errorf("%w: %s has no structured replies", ErrUnknownModule, module)
	}
}

func coachMessage(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return DefaultPlanMessage
	}
	return msg
}

// stripCodeFence removes a surrounding markdown code block, which some models add around JSON
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
