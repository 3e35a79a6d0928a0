package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pawtrack.app/triage/common/llm"
	"pawtrack.app/triage/common/logger"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/store"
)

// historyLimit is how many recent health records are sent to the model
// as medical history in the emergency flow.
const (
	historyLimit = 5

	// maxChatAttempts bounds retries of transient model failures
	// (rate limits, 5xx, network). Shape failures never retry.
	maxChatAttempts = 3
)

var (
	emergencySchema = llm.GenerateSchema[model.EmergencyAssessment]()
	symptomSchema   = llm.GenerateSchema[model.SymptomAnalysis]()
	photoSchema     = llm.GenerateSchema[model.PhotoAnalysis]()
)

// Orchestrator assembles dog context, invokes the generative model with
// an output-shape constraint, and validates the parsed response before
// trusting it. It never writes to persistent storage; logging a result
// as a health record is a separate, explicit operation.
type Orchestrator struct {
	llm             llm.Client
	dogs            store.DogStore
	records         store.HealthRecordStore
	maxTokens       int
	visionMaxTokens int
}

func NewOrchestrator(client llm.Client, dogs store.DogStore, records store.HealthRecordStore, maxTokens, visionMaxTokens int) *Orchestrator {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	if visionMaxTokens <= 0 {
		visionMaxTokens = maxTokens
	}
	return &Orchestrator{
		llm:             client,
		dogs:            dogs,
		records:         records,
		maxTokens:       maxTokens,
		visionMaxTokens: visionMaxTokens,
	}
}

// EmergencyInput is the session snapshot the emergency flow assesses.
type EmergencyInput struct {
	DogID           int64
	Symptoms        []string
	Duration        string
	Severity        string
	CurrentBehavior string
	Vitals          VitalSigns
}

// SymptomInput describes a single logged symptom or health event for
// the symptom-analysis flow.
type SymptomInput struct {
	DogID       int64
	Type        string
	Title       string
	Description string
}

// dogContext is the storage-derived context included in every prompt.
type dogContext struct {
	dog      *model.Dog
	ageLabel string
}

// AssessEmergency runs the emergency-assessment variant: dog context
// plus recent medical history plus the session's symptoms, constrained
// to the EmergencyAssessment shape.
func (o *Orchestrator) AssessEmergency(ctx context.Context, input EmergencyInput) (*model.EmergencyAssessment, error) {
	if len(input.Symptoms) == 0 {
		return nil, NewValidationError("symptoms", "at least one symptom is required")
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DogID:     logger.Ptr(input.DogID),
		Flow:      logger.Ptr("emergency"),
		Component: "triage.orchestrator",
	})

	sc := logger.StartSpan(ctx, "triage.assess_emergency")
	defer sc.End()
	ctx = sc.Context()

	dctx, err := o.dogContext(ctx, input.DogID)
	if err != nil {
		return nil, err
	}

	history, err := o.records.ListRecent(ctx, input.DogID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching health records: %w", err)
	}

	start := time.Now()
	var result model.EmergencyAssessment
	_, err = o.chatWithRetry(ctx, llm.Request{
		SystemPrompt: emergencySystemPrompt,
		UserPrompt:   buildEmergencyPrompt(dctx, history, input),
		SchemaName:   "emergency_assessment",
		Schema:       emergencySchema,
		MaxTokens:    o.maxTokens,
		Temperature:  llm.Temp(0.2),
	}, &result)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "emergency assessment call failed", "error", err)
		return nil, NewExternalServiceError(err)
	}
	if err := result.Validate(); err != nil {
		slog.WarnContext(ctx, "emergency assessment failed shape validation", "error", err)
		return nil, NewExternalServiceError(fmt.Errorf("shape validation: %w", err))
	}

	slog.InfoContext(ctx, "emergency assessment completed",
		"urgency", result.UrgencyLevel,
		"vet_required", result.VetRequired,
		"duration_ms", time.Since(start).Milliseconds())
	return &result, nil
}

// AnalyzeSymptom runs the symptom-analysis variant for one logged
// symptom, constrained to the SymptomAnalysis shape.
func (o *Orchestrator) AnalyzeSymptom(ctx context.Context, input SymptomInput) (*model.SymptomAnalysis, error) {
	if input.Type == "" {
		return nil, NewValidationError("type", "a record type is required")
	}
	if input.Title == "" {
		return nil, NewValidationError("title", "a title is required")
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DogID:     logger.Ptr(input.DogID),
		Flow:      logger.Ptr("symptom"),
		Component: "triage.orchestrator",
	})

	sc := logger.StartSpan(ctx, "triage.analyze_symptom")
	defer sc.End()
	ctx = sc.Context()

	dctx, err := o.dogContext(ctx, input.DogID)
	if err != nil {
		return nil, err
	}

	var result model.SymptomAnalysis
	_, err = o.chatWithRetry(ctx, llm.Request{
		SystemPrompt: symptomSystemPrompt,
		UserPrompt:   buildSymptomPrompt(dctx, input),
		SchemaName:   "symptom_analysis",
		Schema:       symptomSchema,
		MaxTokens:    o.maxTokens,
		Temperature:  llm.Temp(0.2),
	}, &result)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "symptom analysis call failed", "error", err)
		return nil, NewExternalServiceError(err)
	}
	if err := result.Validate(); err != nil {
		slog.WarnContext(ctx, "symptom analysis failed shape validation", "error", err)
		return nil, NewExternalServiceError(fmt.Errorf("shape validation: %w", err))
	}

	slog.InfoContext(ctx, "symptom analysis completed",
		"urgency", result.Urgency,
		"vet_required", result.VetRequired)
	return &result, nil
}

// chatWithRetry wraps the model call with bounded retries and
// exponential backoff. Only transient failures retry; anything else
// surfaces on the first attempt.
func (o *Orchestrator) chatWithRetry(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	var resp *llm.Response
	var err error
	for attempt := 0; attempt < maxChatAttempts; attempt++ {
		resp, err = o.llm.Chat(ctx, req, result)
		if err == nil {
			return resp, nil
		}
		if !llm.IsRetryable(ctx, err) {
			return nil, err
		}
		slog.WarnContext(ctx, "model call retry",
			"attempt", attempt+1,
			"error", err)
		time.Sleep(time.Duration(1<<attempt) * time.Second)
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxChatAttempts, err)
}

func (o *Orchestrator) dogContext(ctx context.Context, dogID int64) (dogContext, error) {
	dog, err := o.dogs.GetByID(ctx, dogID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dogContext{}, &NotFoundError{Resource: "dog", ID: dogID}
		}
		return dogContext{}, fmt.Errorf("fetching dog: %w", err)
	}

	ageLabel := "unknown age"
	if years, ok := dog.AgeYears(time.Now()); ok {
		ageLabel = fmt.Sprintf("%d years old", years)
	}
	return dogContext{dog: dog, ageLabel: ageLabel}, nil
}
