package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/dto"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/service"
)

type HealthRecordHandler struct {
	recordService service.HealthRecordService
}

func NewHealthRecordHandler(recordService service.HealthRecordService) *HealthRecordHandler {
	return &HealthRecordHandler{recordService: recordService}
}

func (h *HealthRecordHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	dogID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateHealthRecordInput{
		DogID:       dogID,
		Type:        model.RecordType(req.Type),
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Severity != nil {
		severity := model.RecordSeverity(*req.Severity)
		input.Severity = &severity
	}
	if req.RecordedAt != nil {
		input.RecordedAt = *req.RecordedAt
	}

	rec, err := h.recordService.Create(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHealthRecordResponse(rec))
}

func (h *HealthRecordHandler) ListByDog(c *gin.Context) {
	dogID, ok := parseID(c, "id")
	if !ok {
		return
	}

	records, err := h.recordService.ListByDog(c.Request.Context(), dogID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]*dto.HealthRecordResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.ToHealthRecordResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"records": resp})
}

func (h *HealthRecordHandler) Delete(c *gin.Context) {
	recordID, ok := parseID(c, "record_id")
	if !ok {
		return
	}

	if err := h.recordService.Delete(c.Request.Context(), recordID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
