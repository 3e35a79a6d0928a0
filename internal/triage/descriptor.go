package triage

import "pawtrack.app/triage/internal/model"

// RecommendationDescriptor is the presentation of an urgency verdict.
// Derived, never stored.
type RecommendationDescriptor struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ActionLabel   string `json:"action_label"`
	SeverityClass string `json:"severity_class"`
}

// Describe maps an urgency to its recommendation descriptor. Pure and
// deterministic; unknown values fall back to the routine descriptor.
func Describe(urgency model.Urgency) RecommendationDescriptor {
	switch urgency {
	case model.UrgencyEmergency:
		return RecommendationDescriptor{
			Title:         "Emergency care needed",
			Description:   "The selected symptoms can be life-threatening. Contact an emergency veterinary clinic right away.",
			ActionLabel:   "Call emergency vet now",
			SeverityClass: "danger",
		}
	case model.UrgencyUrgent:
		return RecommendationDescriptor{
			Title:         "Urgent veterinary care",
			Description:   "These symptoms should be seen by a veterinarian within the next day or two.",
			ActionLabel:   "Schedule vet visit",
			SeverityClass: "warning",
		}
	default:
		return RecommendationDescriptor{
			Title:         "Routine care",
			Description:   "These symptoms are usually minor. Mention them at your dog's next check-up, and monitor for changes.",
			ActionLabel:   "Schedule routine visit",
			SeverityClass: "success",
		}
	}
}
