package router

import (
	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/handler"
)

func AnalysisRouter(rg *gin.RouterGroup, h *handler.AnalysisHandler) {
	rg.POST("/symptom", h.AnalyzeSymptom)
	rg.POST("/photo", h.AnalyzePhoto)
	rg.POST("/photos", h.AnalyzePhotoBatch)
}
