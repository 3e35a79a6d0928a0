package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/dto"
	"pawtrack.app/triage/internal/service"
	"pawtrack.app/triage/internal/taxonomy"
	"pawtrack.app/triage/internal/triage"
)

// AssessmentHandler exposes the assessment-session state machine over
// HTTP. Sessions are in-memory only; every response carries the full
// session snapshot so the client never tracks step state itself.
type AssessmentHandler struct {
	manager *triage.Manager
	records service.HealthRecordService
}

func NewAssessmentHandler(manager *triage.Manager, records service.HealthRecordService) *AssessmentHandler {
	return &AssessmentHandler{
		manager: manager,
		records: records,
	}
}

func (h *AssessmentHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.manager.Open(req.DogID)
	slog.InfoContext(ctx, "assessment session opened", "session_id", view.ID)
	c.JSON(http.StatusCreated, dto.ToSessionResponse(view))
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(s.View()))
}

func (h *AssessmentHandler) Continue(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(s.Continue()))
}

func (h *AssessmentHandler) ToggleSymptom(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ToggleSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := s.ToggleSymptom(req.Symptom)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(view))
}

func (h *AssessmentHandler) SetDetails(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SessionDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	view := s.SetDetails(req.Duration, req.Severity, req.CurrentBehavior, req.Vitals.ToVitalSigns())
	c.JSON(http.StatusOK, dto.ToSessionResponse(view))
}

func (h *AssessmentHandler) Reset(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(s.Reset()))
}

func (h *AssessmentHandler) Close(c *gin.Context) {
	h.manager.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Assess runs the AI emergency assessment for the session. The request
// blocks until the model answers; the session advances to the AI-result
// step only on a valid result.
func (h *AssessmentHandler) Assess(c *gin.Context) {
	result, err := h.manager.RequestAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ToSessionResponse(s.View())
	resp.Result = result
	c.JSON(http.StatusOK, resp)
}

// LogResult saves the session's AI assessment as a health record. This
// never happens implicitly as part of assessing.
func (h *AssessmentHandler) LogResult(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	view := s.View()
	if view.Result == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "session has no assessment result to log"})
		return
	}
	if view.DogID == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "session is not bound to a dog"})
		return
	}

	rec, err := h.records.LogAssessment(c.Request.Context(), *view.DogID, view.Result)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHealthRecordResponse(rec))
}

// Symptoms returns the quick-select catalog grouped by urgency bucket.
func (h *AssessmentHandler) Symptoms(c *gin.Context) {
	entries := taxonomy.All()
	catalog := make([]dto.SymptomCatalogEntry, 0, len(entries))
	for _, e := range entries {
		catalog = append(catalog, dto.SymptomCatalogEntry{
			Phrase:  e.Text,
			Urgency: string(e.Bucket),
		})
	}
	c.JSON(http.StatusOK, gin.H{"symptoms": catalog})
}
