package dto

import (
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/triage"
)

type OpenSessionRequest struct {
	DogID *int64 `json:"dog_id,string,omitempty"`
}

type ToggleSymptomRequest struct {
	Symptom string `json:"symptom" binding:"required"`
}

type SessionDetailsRequest struct {
	Duration        string          `json:"duration" binding:"max=512"`
	Severity        string          `json:"severity" binding:"max=512"`
	CurrentBehavior string          `json:"current_behavior" binding:"max=2048"`
	Vitals          VitalSignsInput `json:"vitals"`
}

type VitalSignsInput struct {
	Temperature string `json:"temperature" binding:"max=255"`
	HeartRate   string `json:"heart_rate" binding:"max=255"`
	Breathing   string `json:"breathing" binding:"max=255"`
	GumColor    string `json:"gum_color" binding:"max=255"`
}

func (v VitalSignsInput) ToVitalSigns() triage.VitalSigns {
	return triage.VitalSigns{
		Temperature: v.Temperature,
		HeartRate:   v.HeartRate,
		Breathing:   v.Breathing,
		GumColor:    v.GumColor,
	}
}

type RecommendationResponse struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ActionLabel   string `json:"action_label"`
	SeverityClass string `json:"severity_class"`
}

type SessionResponse struct {
	ID             string                     `json:"id"`
	DogID          *int64                     `json:"dog_id,string,omitempty"`
	Step           string                     `json:"step"`
	Symptoms       []string                   `json:"symptoms"`
	Urgency        string                     `json:"urgency,omitempty"`
	Recommendation *RecommendationResponse    `json:"recommendation,omitempty"`
	Result         *model.EmergencyAssessment `json:"result,omitempty"`
}

func ToSessionResponse(v triage.View) *SessionResponse {
	resp := &SessionResponse{
		ID:       v.ID,
		DogID:    v.DogID,
		Step:     v.Step.String(),
		Symptoms: v.Symptoms,
		Urgency:  string(v.Urgency),
		Result:   v.Result,
	}
	if v.Recommendation != nil {
		resp.Recommendation = &RecommendationResponse{
			Title:         v.Recommendation.Title,
			Description:   v.Recommendation.Description,
			ActionLabel:   v.Recommendation.ActionLabel,
			SeverityClass: v.Recommendation.SeverityClass,
		}
	}
	return resp
}

type SymptomCatalogEntry struct {
	Phrase  string `json:"phrase"`
	Urgency string `json:"urgency"`
}

type AnalyzeSymptomRequest struct {
	DogID       int64   `json:"dog_id,string" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=4096"`
}

type PhotoAnalysisResponse struct {
	Name     string               `json:"name"`
	Analysis *model.PhotoAnalysis `json:"analysis,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type PhotoBatchResponse struct {
	Results   []PhotoAnalysisResponse `json:"results"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}
