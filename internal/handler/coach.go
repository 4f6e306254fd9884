package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CoachHandler implements the session, plan, analysis and dashboard endpoints
type CoachHandler struct {
	registry       *service.WorkspaceRegistry
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewCoachHandler creates a new CoachHandler
func NewCoachHandler(registry *service.WorkspaceRegistry, maxUploadBytes int64, logger *zap.Logger) *CoachHandler {
	return &CoachHandler{
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// SessionResponse describes a live conversation session
type SessionResponse struct {
	SessionID string        `json:"sessionId"`
	Module    model.Module  `json:"module"`
	Sport     string        `json:"sport"`
	Persona   model.Persona `json:"persona"`
	Turns     []model.Turn  `json:"turns"`
	Busy      bool          `json:"busy"`
}

// TurnRequest carries the user's message
type TurnRequest struct {
	Text string `json:"text"`
}

// TurnResponse is the outcome of one exchange
type TurnResponse struct {
	UserTurn      model.Turn  `json:"userTurn"`
	AssistantTurn model.Turn  `json:"assistantTurn"`
	Plan          *model.Plan `json:"plan,omitempty"`
	Failed        bool        `json:"failed"`
}

// PlanResponse is a plan tracker; Visible is false while it is empty
type PlanResponse struct {
	model.Plan
	Visible bool `json:"visible"`
}

func sessionResponse(s *service.ConversationSession) SessionResponse {
	mc := s.Context()
	return SessionResponse{
		SessionID: s.ID(),
		Module:    mc.Module,
		Sport:     mc.Sport,
		Persona:   mc.Persona,
		Turns:     s.Turns(),
		Busy:      s.Busy(),
	}
}

// GetSession returns the module's session, creating it when absent
func (h *CoachHandler) GetSession(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	module, ok := moduleParam(c, h.logger)
	if !ok {
		return
	}

	s, err := w.Session(module)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(s))
}

// PostTurn sends a user turn and waits for the assistant's reply
func (h *CoachHandler) PostTurn(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	module, ok := moduleParam(c, h.logger)
	if !ok {
		return
	}

	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}

	s, err := w.Session(module)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := s.SendUserTurn(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TurnResponse{
		UserTurn:      result.UserTurn,
		AssistantTurn: result.AssistantTurn,
		Plan:          result.Plan,
		Failed:        result.Failed,
	})
}

// GetPlan returns the module's plan tracker
func (h *CoachHandler) GetPlan(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	module, ok := moduleParam(c, h.logger)
	if !ok {
		return
	}

	tracker, err := w.Tracker(module)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, PlanResponse{Plan: tracker.Plan(), Visible: !tracker.Empty()})
}

// PostToggleItem flips one plan item's completed flag
func (h *CoachHandler) PostToggleItem(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	module, ok := moduleParam(c, h.logger)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		validationError(c, h.logger, err)
		return
	}

	tracker, err := w.Tracker(module)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if _, err := tracker.ToggleItem(index); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, PlanResponse{Plan: tracker.Plan(), Visible: !tracker.Empty()})
}

// PostAnalysis scores an uploaded image or video
func (h *CoachHandler) PostAnalysis(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		validationError(c, h.logger, err)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Upload is too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	media, err := service.EncodeMedia(data)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("analysis upload received",
		zap.String("filename", fileHeader.Filename),
		zap.String("mime_type", media.MimeType),
		zap.Int64("size", fileHeader.Size),
	)

	outcome, err := w.Analyze(c.Request.Context(), media)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetDashboard returns the unified dashboard metrics
func (h *CoachHandler) GetDashboard(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.Dashboard())
}
