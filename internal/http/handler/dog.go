package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/dto"
	"pawtrack.app/triage/internal/service"
)

type DogHandler struct {
	dogService service.DogService
}

func NewDogHandler(dogService service.DogService) *DogHandler {
	return &DogHandler{dogService: dogService}
}

func (h *DogHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dog, err := h.dogService.Create(ctx, service.CreateDogInput{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		WeightKg:  req.WeightKg,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDogResponse(dog))
}

func (h *DogHandler) GetByID(c *gin.Context) {
	dogID, ok := parseID(c, "id")
	if !ok {
		return
	}

	dog, err := h.dogService.GetByID(c.Request.Context(), dogID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDogResponse(dog))
}

func (h *DogHandler) ListByOwner(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Query("owner_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id query parameter is required"})
		return
	}

	dogs, err := h.dogService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]*dto.DogResponse, 0, len(dogs))
	for i := range dogs {
		resp = append(resp, dto.ToDogResponse(&dogs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"dogs": resp})
}

func (h *DogHandler) Delete(c *gin.Context) {
	dogID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.dogService.Delete(c.Request.Context(), dogID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}
