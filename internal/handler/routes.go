package handler

import (
	"net/http"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/middleware"
	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the coaching API on router
func RegisterRoutes(router gin.IRouter, registry *service.WorkspaceRegistry, maxUploadBytes int64, logger *zap.Logger) {
	auth := NewAuthHandler(registry, logger)
	workspaces := NewWorkspaceHandler(registry, logger)
	coach := NewCoachHandler(registry, maxUploadBytes, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"workspaces": registry.Len(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", auth.PostLogin)
		v1.POST("/auth/register", auth.PostRegister)
		v1.POST("/auth/logout", auth.PostLogout)

		v1.GET("/body-parts", workspaces.GetBodyParts)

		ws := v1.Group("/workspaces/:id")
		ws.GET("", workspaces.GetWorkspace)
		ws.PUT("/sport", workspaces.PutSport)
		ws.PUT("/persona", workspaces.PutPersona)
		ws.PUT("/body-stats", middleware.BodyLimitMiddleware(maxUploadBytes*2), workspaces.PutBodyStats)
		ws.PUT("/recovery-focus", workspaces.PutRecoveryFocus)

		ws.GET("/modules/:module/session", coach.GetSession)
		ws.POST("/modules/:module/turns", coach.PostTurn)
		ws.GET("/modules/:module/plan", coach.GetPlan)
		ws.POST("/modules/:module/plan/items/:index/toggle", coach.PostToggleItem)

		ws.POST("/analysis", middleware.BodyLimitMiddleware(maxUploadBytes+1<<20), coach.PostAnalysis)
		ws.GET("/dashboard", coach.GetDashboard)
	}
}
