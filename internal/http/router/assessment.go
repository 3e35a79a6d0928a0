package router

import (
	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/handler"
)

// AssessmentRouter wires the session state machine. Every mutation
// returns the full session snapshot.
func AssessmentRouter(rg *gin.RouterGroup, h *handler.AssessmentHandler) {
	rg.POST("", h.Open)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/continue", h.Continue)
	rg.POST("/:id/symptoms/toggle", h.ToggleSymptom)
	rg.PUT("/:id/details", h.SetDetails)
	rg.POST("/:id/assess", h.Assess)
	rg.POST("/:id/log", h.LogResult)
	rg.POST("/:id/reset", h.Reset)
	rg.DELETE("/:id", h.Close)
}
