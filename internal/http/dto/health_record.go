package dto

import (
	"time"

	"pawtrack.app/triage/internal/model"
)

type CreateHealthRecordRequest struct {
	Type        string     `json:"type" binding:"required,oneof=symptom vaccination medication vet_visit injury other"`
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=4096"`
	Severity    *string    `json:"severity,omitempty" binding:"omitempty,oneof=mild moderate severe"`
	RecordedAt  *time.Time `json:"recorded_at,omitempty"`
}

type HealthRecordResponse struct {
	ID          int64      `json:"id,string"`
	DogID       int64      `json:"dog_id,string"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Severity    *string    `json:"severity,omitempty"`
	RecordedAt  time.Time  `json:"recorded_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToHealthRecordResponse(r *model.HealthRecord) *HealthRecordResponse {
	resp := &HealthRecordResponse{
		ID:          r.ID,
		DogID:       r.DogID,
		Type:        string(r.Type),
		Title:       r.Title,
		Description: r.Description,
		RecordedAt:  r.RecordedAt,
		CreatedAt:   r.CreatedAt,
	}
	if r.Severity != nil {
		s := string(*r.Severity)
		resp.Severity = &s
	}
	return resp
}
