package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pawtrack.app/triage/common/id"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/store"
)

type CreateHealthRecordInput struct {
	DogID       int64
	Type        model.RecordType
	Title       string
	Description *string
	Severity    *model.RecordSeverity
	RecordedAt  time.Time
}

type HealthRecordService interface {
	Create(ctx context.Context, input CreateHealthRecordInput) (*model.HealthRecord, error)
	ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error)
	Delete(ctx context.Context, id int64) error

	// LogAssessment saves a completed emergency assessment as a health
	// record. Assessments are never persisted implicitly; this is the
	// explicit save action.
	LogAssessment(ctx context.Context, dogID int64, assessment *model.EmergencyAssessment) (*model.HealthRecord, error)
}

type healthRecordService struct {
	recordStore store.HealthRecordStore
	dogStore    store.DogStore
}

func NewHealthRecordService(recordStore store.HealthRecordStore, dogStore store.DogStore) HealthRecordService {
	return &healthRecordService{
		recordStore: recordStore,
		dogStore:    dogStore,
	}
}

func (s *healthRecordService) Create(ctx context.Context, input CreateHealthRecordInput) (*model.HealthRecord, error) {
	if _, err := s.dogStore.GetByID(ctx, input.DogID); err != nil {
		return nil, fmt.Errorf("looking up dog %d: %w", input.DogID, err)
	}

	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	rec := &model.HealthRecord{
		ID:          id.New(),
		DogID:       input.DogID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		RecordedAt:  recordedAt,
	}

	if err := s.recordStore.Create(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to create health record",
			"error", err,
			"dog_id", input.DogID,
		)
		return nil, fmt.Errorf("creating health record: %w", err)
	}

	slog.InfoContext(ctx, "health record created",
		"record_id", rec.ID,
		"dog_id", rec.DogID,
		"type", rec.Type,
	)
	return rec, nil
}

func (s *healthRecordService) ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error) {
	records, err := s.recordStore.ListByDog(ctx, dogID)
	if err != nil {
		return nil, fmt.Errorf("listing health records: %w", err)
	}
	return records, nil
}

func (s *healthRecordService) Delete(ctx context.Context, recordID int64) error {
	if err := s.recordStore.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("deleting health record: %w", err)
	}
	slog.InfoContext(ctx, "health record deleted", "record_id", recordID)
	return nil
}

func (s *healthRecordService) LogAssessment(ctx context.Context, dogID int64, assessment *model.EmergencyAssessment) (*model.HealthRecord, error) {
	severity := severityForUrgency(assessment.UrgencyLevel)
	description := assessmentDescription(assessment)

	return s.Create(ctx, CreateHealthRecordInput{
		DogID:       dogID,
		Type:        model.RecordTypeSymptom,
		Title:       fmt.Sprintf("AI assessment: %s care recommended", assessment.UrgencyLevel),
		Description: &description,
		Severity:    &severity,
	})
}

func severityForUrgency(u model.Urgency) model.RecordSeverity {
	switch u {
	case model.UrgencyEmergency:
		return model.RecordSeveritySevere
	case model.UrgencyUrgent:
		return model.RecordSeverityModerate
	default:
		return model.RecordSeverityMild
	}
}

func assessmentDescription(a *model.EmergencyAssessment) string {
	var b strings.Builder
	b.WriteString(a.Reasoning)
	if len(a.ImmediateActions) > 0 {
		b.WriteString("\n\nRecommended actions:\n")
		for _, action := range a.ImmediateActions {
			b.WriteString("- " + action + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
