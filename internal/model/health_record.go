package model

import (
	"fmt"
	"time"
)

type RecordType string

const (
	RecordTypeSymptom     RecordType = "symptom"
	RecordTypeVaccination RecordType = "vaccination"
	RecordTypeMedication  RecordType = "medication"
	RecordTypeVetVisit    RecordType = "vet_visit"
	RecordTypeInjury      RecordType = "injury"
	RecordTypeOther       RecordType = "other"
)

type RecordSeverity string

const (
	RecordSeverityMild     RecordSeverity = "mild"
	RecordSeverityModerate RecordSeverity = "moderate"
	RecordSeveritySevere   RecordSeverity = "severe"
)

type HealthRecord struct {
	ID          int64           `json:"id"`
	DogID       int64           `json:"dog_id"`
	Type        RecordType      `json:"type"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Severity    *RecordSeverity `json:"severity,omitempty"`
	RecordedAt  time.Time       `json:"recorded_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ContextLine formats the record the way it is presented to the model
// as medical history.
func (r *HealthRecord) ContextLine() string {
	return fmt.Sprintf("%s: %s", r.Type, r.Title)
}
