package triage

import (
	"fmt"
	"strings"

	"pawtrack.app/triage/internal/model"
)

const emergencySystemPrompt = `You are a veterinary triage assistant for dog owners.
Assess the reported symptoms and decide how urgently the dog needs veterinary care.
Be conservative: when in doubt, escalate. You are not a substitute for a
veterinarian and must never advise skipping care for potentially serious signs.
Respond only with the requested JSON structure.`

const symptomSystemPrompt = `You are a veterinary assistant helping a dog owner
understand a logged symptom or health event. Explain what it may indicate in
plain language and give practical next steps. Be conservative about urgency.
Respond only with the requested JSON structure.`

const photoSystemPrompt = `You are a veterinary assistant reviewing a photo a dog
owner submitted (skin, eyes, ears, wounds, stool, etc.). Describe what is
visible, flag anything concerning, and recommend next steps. If the image is
unclear, say so in the findings rather than guessing.
Respond only with the requested JSON structure.`

func buildEmergencyPrompt(dctx dogContext, history []model.HealthRecord, input EmergencyInput) string {
	var b strings.Builder

	writeDogContext(&b, dctx)

	b.WriteString("\nReported symptoms (in the order selected):\n")
	for _, s := range input.Symptoms {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	if input.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", input.Duration)
	}
	if input.Severity != "" {
		fmt.Fprintf(&b, "Owner-described severity: %s\n", input.Severity)
	}
	if input.CurrentBehavior != "" {
		fmt.Fprintf(&b, "Current behavior: %s\n", input.CurrentBehavior)
	}
	writeVitals(&b, input.Vitals)

	if len(history) > 0 {
		b.WriteString("\nRecent medical history (most recent first):\n")
		for _, rec := range history {
			fmt.Fprintf(&b, "- %s\n", rec.ContextLine())
		}
	}

	b.WriteString("\nAssess how urgently this dog needs veterinary care.")
	return b.String()
}

func buildSymptomPrompt(dctx dogContext, input SymptomInput) string {
	var b strings.Builder

	writeDogContext(&b, dctx)

	fmt.Fprintf(&b, "\nLogged entry:\nType: %s\nTitle: %s\n", input.Type, input.Title)
	if input.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", input.Description)
	}

	b.WriteString("\nAnalyze this entry for the owner.")
	return b.String()
}

func buildPhotoPrompt(context string) string {
	if context == "" {
		return "Analyze this photo of my dog for any health concerns."
	}
	return fmt.Sprintf("Analyze this photo of my dog for any health concerns.\nOwner's note: %s", context)
}

func writeDogContext(b *strings.Builder, dctx dogContext) {
	fmt.Fprintf(b, "Dog: %s, %s, %s", dctx.dog.Name, dctx.dog.Breed, dctx.ageLabel)
	if dctx.dog.WeightKg != nil {
		fmt.Fprintf(b, ", %.1f kg", *dctx.dog.WeightKg)
	}
	b.WriteString("\n")
}

func writeVitals(b *strings.Builder, v VitalSigns) {
	lines := []struct{ label, value string }{
		{"Temperature", v.Temperature},
		{"Heart rate", v.HeartRate},
		{"Breathing", v.Breathing},
		{"Gum color", v.GumColor},
	}
	wrote := false
	for _, l := range lines {
		if l.value == "" {
			continue
		}
		if !wrote {
			b.WriteString("Vital signs:\n")
			wrote = true
		}
		fmt.Fprintf(b, "- %s: %s\n", l.label, l.value)
	}
}
