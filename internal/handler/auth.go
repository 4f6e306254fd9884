package handler

import (
	"net/http"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler implements the sign-in endpoints. Any credentials are accepted.
type AuthHandler struct {
	registry *service.WorkspaceRegistry
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(registry *service.WorkspaceRegistry, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		registry: registry,
		logger:   logger,
	}
}

// SignInRequest is the body of login and register
type SignInRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse identifies the new workspace
type SignInResponse struct {
	WorkspaceID string `json:"workspaceId"`
	Owner       string `json:"owner"`
}

// LogoutRequest is the body of logout
type LogoutRequest struct {
	WorkspaceID string `json:"workspaceId" binding:"required"`
}

// PostLogin signs in and creates a workspace
func (h *AuthHandler) PostLogin(c *gin.Context) {
	h.signIn(c, http.StatusOK)
}

// PostRegister registers and creates a workspace
func (h *AuthHandler) PostRegister(c *gin.Context) {
	h.signIn(c, http.StatusCreated)
}

func (h *AuthHandler) signIn(c *gin.Context, status int) {
	var req SignInRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			validationError(c, h.logger, err)
			return
		}
	}

	owner := req.Name
	if owner == "" {
		owner = req.Email
	}
	w := h.registry.SignIn(owner)
	state := w.State()

	c.JSON(status, SignInResponse{
		WorkspaceID: state.ID,
		Owner:       state.Owner,
	})
}

// PostLogout discards the workspace
func (h *AuthHandler) PostLogout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, h.logger, err)
		return
	}

	if err := h.registry.SignOut(req.WorkspaceID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
