package model

import "fmt"

// Urgency is a triage bucket, ordered by decreasing severity:
// emergency > urgent > routine. The zero value means "no urgency derived yet".
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyRoutine   Urgency = "routine"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyEmergency, UrgencyUrgent, UrgencyRoutine:
		return true
	}
	return false
}

// Rank orders urgencies for comparison; higher is more severe.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyEmergency:
		return 3
	case UrgencyUrgent:
		return 2
	case UrgencyRoutine:
		return 1
	}
	return 0
}

// PhotoUrgency is the coarser scale used by photo analysis.
type PhotoUrgency string

const (
	PhotoUrgencyLow    PhotoUrgency = "low"
	PhotoUrgencyMedium PhotoUrgency = "medium"
	PhotoUrgencyHigh   PhotoUrgency = "high"
)

func (u PhotoUrgency) Valid() bool {
	switch u {
	case PhotoUrgencyLow, PhotoUrgencyMedium, PhotoUrgencyHigh:
		return true
	}
	return false
}

// SymptomAnalysis is the model's structured verdict on a single logged
// symptom or health event.
type SymptomAnalysis struct {
	Severity         string   `json:"severity" jsonschema:"enum=mild,enum=moderate,enum=severe,description=Clinical severity of the described symptom"`
	Urgency          Urgency  `json:"urgency" jsonschema:"enum=emergency,enum=urgent,enum=routine"`
	Insights         string   `json:"insights" jsonschema:"description=Plain-language explanation of what the symptom may indicate"`
	Recommendations  []string `json:"recommendations" jsonschema:"description=Concrete next steps for the owner"`
	VetRequired      bool     `json:"vet_required"`
	EmergencyWarning string   `json:"emergency_warning,omitempty" jsonschema:"description=Present only when immediate emergency care is needed"`
}

// Validate checks the parsed response against the expected shape.
// A response that fails here is an external-service failure, not coerced.
func (a *SymptomAnalysis) Validate() error {
	if !a.Urgency.Valid() {
		return fmt.Errorf("invalid urgency %q", a.Urgency)
	}
	switch a.Severity {
	case "mild", "moderate", "severe":
	default:
		return fmt.Errorf("invalid severity %q", a.Severity)
	}
	if a.Insights == "" {
		return fmt.Errorf("missing insights")
	}
	if len(a.Recommendations) == 0 {
		return fmt.Errorf("missing recommendations")
	}
	return nil
}

// EmergencyAssessment is the model's structured verdict for the
// emergency-assessment flow.
type EmergencyAssessment struct {
	UrgencyLevel     Urgency  `json:"urgency_level" jsonschema:"enum=emergency,enum=urgent,enum=routine"`
	TimeFrame        string   `json:"time_frame" jsonschema:"description=How soon care is needed (e.g. immediately, within 24 hours)"`
	Reasoning        string   `json:"reasoning"`
	ImmediateActions []string `json:"immediate_actions" jsonschema:"description=Steps the owner should take right now"`
	RedFlags         []string `json:"red_flags" jsonschema:"description=Signs that would escalate the situation"`
	VetRequired      bool     `json:"vet_required"`
}

func (a *EmergencyAssessment) Validate() error {
	if !a.UrgencyLevel.Valid() {
		return fmt.Errorf("invalid urgency_level %q", a.UrgencyLevel)
	}
	if a.TimeFrame == "" {
		return fmt.Errorf("missing time_frame")
	}
	if a.Reasoning == "" {
		return fmt.Errorf("missing reasoning")
	}
	if len(a.ImmediateActions) == 0 {
		return fmt.Errorf("missing immediate_actions")
	}
	return nil
}

// PhotoAnalysis is the model's structured verdict on one photo.
type PhotoAnalysis struct {
	Findings         string       `json:"findings" jsonschema:"description=What is visible in the photo"`
	Concerns         []string     `json:"concerns"`
	Recommendations  []string     `json:"recommendations"`
	UrgencyLevel     PhotoUrgency `json:"urgency_level" jsonschema:"enum=low,enum=medium,enum=high"`
	SuggestedActions []string     `json:"suggested_actions"`
}

func (a *PhotoAnalysis) Validate() error {
	if !a.UrgencyLevel.Valid() {
		return fmt.Errorf("invalid urgency_level %q", a.UrgencyLevel)
	}
	if a.Findings == "" {
		return fmt.Errorf("missing findings")
	}
	if len(a.Recommendations) == 0 {
		return fmt.Errorf("missing recommendations")
	}
	return nil
}
