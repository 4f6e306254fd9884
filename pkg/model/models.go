package model

import (
	"fmt"
	"strings"
)

// Module identifies a coaching feature area
type Module string

const (
	ModuleUnifiedDashboard    Module = "Unified Dashboard"
	ModulePerformanceAnalysis Module = "Performance Analysis"
	ModuleExercisePlan        Module = "Exercise Plan"
	ModuleDietaryPlan         Module = "Dietary Plan"
	ModuleInjuryRecoveryPlan  Module = "Injury Recovery Plan"
	ModuleGeneral             Module = "General"
)

var moduleSlugs = map[Module]string{
	ModuleUnifiedDashboard:    "dashboard",
	ModulePerformanceAnalysis: "performance",
	ModuleExercisePlan:        "exercise",
	ModuleDietaryPlan:         "diet",
	ModuleInjuryRecoveryPlan:  "recovery",
	ModuleGeneral:             "general",
}

// Modules lists every module in tab order
func Modules() []Module {
	return []Module{
		ModuleUnifiedDashboard,
		ModulePerformanceAnalysis,
		ModuleExercisePlan,
		ModuleDietaryPlan,
		ModuleInjuryRecoveryPlan,
		ModuleGeneral,
	}
}

// Slug returns the URL-safe name of the module
func (m Module) Slug() string {
	return moduleSlugs[m]
}

// HasPlan reports whether replies for the module carry a structured plan
func (m Module) HasPlan() bool {
	return m == ModuleExercisePlan || m == ModuleDietaryPlan
}

// ParseModule accepts either the display name or the slug of a module
func ParseModule(s string) (Module, error) {
	s = strings.TrimSpace(s)
	for m, slug := range moduleSlugs {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, slug) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module: %q", s)
}

// Persona is a fixed behavioral tone profile for the assistant
type Persona string

const (
	PersonaFriendlyMentor Persona = "Friendly Mentor"
	PersonaStrictTrainer  Persona = "Strict Trainer"
	PersonaOlympicPro     Persona = "Olympic Pro"
	PersonaChillBuddy     Persona = "Chill Buddy"
)

// Personas lists the selectable personas, default first
func Personas() []Persona {
	return []Persona{PersonaFriendlyMentor, PersonaStrictTrainer, PersonaOlympicPro, PersonaChillBuddy}
}

// ParsePersona resolves a persona name; unknown or empty names fall back to FriendlyMentor
func ParsePersona(s string) Persona {
	s = strings.TrimSpace(s)
	for _, p := range Personas() {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return PersonaFriendlyMentor
}

// Sender represents who authored a conversation turn
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Turn is one immutable message in a conversation
type Turn struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// InlineMedia is base64 encoded media sent alongside a text turn
type InlineMedia struct {
	MimeType   string `json:"mimeType"`
	Base64Data string `json:"data"`
}

// IsVideo reports whether the media is a video
func (m InlineMedia) IsVideo() bool {
	return strings.HasPrefix(m.MimeType, "video/")
}

// DataURL renders the media as a data URL
func (m InlineMedia) DataURL() string {
	return "data:" + m.MimeType + ";base64," + m.Base64Data
}

// AnalysisResult is the scored outcome of a performance analysis
type AnalysisResult struct {
	Category       string `json:"category"`
	Score          string `json:"score"`
	Feedback       string `json:"feedback"`
	ImprovementTip string `json:"improvementTip"`
}

// String renders the result in the four-label reply format
func (r AnalysisResult) String() string {
	return fmt.Sprintf("Category: %s\nScore: %s\nFeedback: %s\nImprovement Tip: %s",
		r.Category, r.Score, r.Feedback, r.ImprovementTip)
}

// FeedbackItem is one piece of analysis feedback, optionally pinned to a video offset
type FeedbackItem struct {
	TimestampLabel string `json:"timestamp,omitempty"`
	OffsetSeconds  *int   `json:"seconds,omitempty"`
	Text           string `json:"text"`
}

// PlanItem is a completable exercise or meal
type PlanItem struct {
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	Completed bool   `json:"completed"`
}

// Plan is a full-replacement set of items for today
type Plan struct {
	Module Module     `json:"module"`
	Items  []PlanItem `json:"items"`
}

// OutputSchema constrains the shape of the assistant's reply
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any
}

// DashboardMetrics is the aggregate snapshot shown on the unified dashboard
type DashboardMetrics struct {
	OverallScore       int `json:"overallScore"`
	PerformanceScore   int `json:"performanceScore"`
	ExerciseCompletion int `json:"exerciseCompletion"`
	DietAdherence      int `json:"dietAdherence"`
	RecoveryStatus     int `json:"recoveryStatus"`
	Streak             int `json:"streak"`
}
