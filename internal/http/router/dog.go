package router

import (
	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/handler"
)

func DogRouter(rg *gin.RouterGroup, dogs *handler.DogHandler, records *handler.HealthRecordHandler) {
	rg.POST("", dogs.Create)
	rg.GET("", dogs.ListByOwner)
	rg.GET("/:id", dogs.GetByID)
	rg.DELETE("/:id", dogs.Delete)

	rg.POST("/:id/records", records.Create)
	rg.GET("/:id/records", records.ListByDog)
	rg.DELETE("/:id/records/:record_id", records.Delete)
}
