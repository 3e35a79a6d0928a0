package router

import (
	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/handler"
	"pawtrack.app/triage/internal/service"
	"pawtrack.app/triage/internal/triage"
)

func SetupRoutes(router *gin.Engine, manager *triage.Manager, orchestrator *triage.Orchestrator, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		assessmentHandler := handler.NewAssessmentHandler(manager, services.HealthRecords())
		AssessmentRouter(v1.Group("/assessments"), assessmentHandler)
		v1.GET("/symptoms", assessmentHandler.Symptoms)

		analysisHandler := handler.NewAnalysisHandler(orchestrator)
		AnalysisRouter(v1.Group("/analysis"), analysisHandler)

		dogHandler := handler.NewDogHandler(services.Dogs())
		recordHandler := handler.NewHealthRecordHandler(services.HealthRecords())
		DogRouter(v1.Group("/dogs"), dogHandler, recordHandler)
	}
}
