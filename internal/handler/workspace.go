package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkspaceHandler implements the sport, persona and auxiliary context endpoints
type WorkspaceHandler struct {
	registry *service.WorkspaceRegistry
	logger   *zap.Logger
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(registry *service.WorkspaceRegistry, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		registry: registry,
		logger:   logger,
	}
}

// SportRequest selects the sport
type SportRequest struct {
	Sport string `json:"sport" binding:"required"`
}

// PersonaRequest selects the coaching persona
type PersonaRequest struct {
	Persona string `json:"persona"`
}

// BodyStatsRequest records the dietary context; Image is optional base64 image data
type BodyStatsRequest struct {
	Height string `json:"height" binding:"required"`
	Weight string `json:"weight" binding:"required"`
	Image  string `json:"image"`
}

// RecoveryFocusRequest records the injured body part
type RecoveryFocusRequest struct {
	BodyPart string `json:"bodyPart" binding:"required"`
}

// GetWorkspace returns the current selections
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// PutSport selects the sport and starts over
func (h *WorkspaceHandler) PutSport(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}

	var req SportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}
	if err := w.SelectSport(req.Sport); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// PutPersona selects the persona; unknown names fall back to the default
func (h *WorkspaceHandler) PutPersona(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}

	var req PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}
	w.SelectPersona(req.Persona)
	c.JSON(http.StatusOK, w.State())
}

// PutBodyStats records height, weight and an optional body image
func (h *WorkspaceHandler) PutBodyStats(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}

	var req BodyStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}

	var image *model.InlineMedia
	if req.Image != "" {
		media, err := decodeImage(req.Image)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		image = &media
	}

	if err := w.SetBodyStats(req.Height, req.Weight, image); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// PutRecoveryFocus records the injured body part
func (h *WorkspaceHandler) PutRecoveryFocus(c *gin.Context) {
	w, ok := workspace(c, h.registry, h.logger)
	if !ok {
		return
	}

	var req RecoveryFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}
	if _, err := w.SetRecoveryFocus(req.BodyPart); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// GetBodyParts lists the selectable recovery focus areas
func (h *WorkspaceHandler) GetBodyParts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bodyParts": model.BodyParts()})
}

// decodeImage accepts raw base64 and re-encodes it with a sniffed image type
func decodeImage(data string) (model.InlineMedia, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return model.InlineMedia{}, fmt.Errorf("%w: image is not valid base64", service.ErrUnsupportedMedia)
	}
	media, err := service.EncodeMedia(raw)
	if err != nil {
		return model.InlineMedia{}, err
	}
	if media.IsVideo() {
		return model.InlineMedia{}, fmt.Errorf("%w: body stats accept images only", service.ErrUnsupportedMedia)
	}
	return media, nil
}
