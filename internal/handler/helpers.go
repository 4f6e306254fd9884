package handler

import (
	"errors"
	"net/http"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/middleware"
	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// errorStatus maps a service error to an HTTP status, error code and message
func errorStatus(err error) (int, string, string) {
	var parseErr *service.AnalysisParseError
	switch {
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "ANALYSIS_PARSE_ERROR", parseErr.UserMessage()
	case errors.Is(err, service.ErrAnalysisUnavailable):
		return http.StatusBadGateway, "UPSTREAM_ERROR", service.AnalysisUnavailableMessage
	case errors.Is(err, service.ErrWorkspaceNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Workspace not found"
	case errors.Is(err, service.ErrUnknownModule):
		return http.StatusNotFound, "NOT_FOUND", "Module not found"
	case errors.Is(err, service.ErrModuleNotReady):
		return http.StatusUnprocessableEntity, "MODULE_NOT_READY", "Module is missing required context"
	case errors.Is(err, service.ErrBusy):
		return http.StatusConflict, "CONFLICT", "A reply is already in flight"
	case errors.Is(err, service.ErrSessionDisposed):
		return http.StatusConflict, "CONFLICT", "The session was replaced before the reply arrived"
	case errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, "VALIDATION_ERROR", "Only image and video uploads are supported"
	case errors.Is(err, service.ErrEmptyTurn),
		errors.Is(err, service.ErrItemIndex),
		errors.Is(err, model.ErrMissingSport),
		errors.Is(err, model.ErrMissingBodyStats),
		errors.Is(err, model.ErrMissingBodyPart):
		return http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}

// respondError writes the mapped error response and records the error on the context
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code, message := errorStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		_ = c.Error(err)
	} else {
		logger.Warn("request rejected",
			zap.String("code", code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}

// validationError writes a 400 for a malformed request body
func validationError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Invalid request body",
		Details: stringPtr(err.Error()),
	})
}

// workspace resolves the :id path parameter
func workspace(c *gin.Context, registry *service.WorkspaceRegistry, logger *zap.Logger) (*service.Workspace, bool) {
	id := c.Param("id")
	w, err := registry.Get(id)
	if err != nil {
		respondError(c, logger, err)
		return nil, false
	}
	c.Set(middleware.WorkspaceIDKey, id)
	return w, true
}

// moduleParam resolves the :module path parameter
func moduleParam(c *gin.Context, logger *zap.Logger) (model.Module, bool) {
	module, err := model.ParseModule(c.Param("module"))
	if err != nil {
		logger.Warn("unknown module", zap.String("module", c.Param("module")))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Module not found",
			Details: stringPtr(err.Error()),
		})
		return "", false
	}
	return module, true
}
