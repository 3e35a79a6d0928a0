// Package taxonomy holds the fixed symptom catalogs used by the
// quick-select assessment flow. The three lists are disjoint and are
// the single source of truth for which urgency bucket a canned symptom
// belongs to. Free-text symptoms are not classified here.
package taxonomy

import "pawtrack.app/triage/internal/model"

// Entry pairs a canonical symptom phrase with its urgency bucket.
// The phrase doubles as the stable identifier for selection tracking.
type Entry struct {
	Text   string
	Bucket model.Urgency
}

var emergencySymptoms = []string{
	"Seizures or convulsions",
	"Difficulty breathing",
	"Collapse or unconsciousness",
	"Severe bleeding",
	"Bloated or distended abdomen",
	"Suspected poisoning",
	"Inability to urinate",
	"Pale or blue gums",
}

var urgentSymptoms = []string{
	"Persistent vomiting",
	"Persistent diarrhea",
	"Refusing food for over 24 hours",
	"Limping or lameness",
	"Excessive thirst or urination",
	"Eye redness or discharge",
	"Painful or swollen ear",
}

var routineSymptoms = []string{
	"Minor scratching",
	"Occasional sneezing",
	"Mild flaky skin",
	"Bad breath",
	"Shedding more than usual",
	"Intermittent soft stool",
}

var byPhrase map[string]model.Urgency

func init() {
	byPhrase = make(map[string]model.Urgency)
	for _, s := range emergencySymptoms {
		byPhrase[s] = model.UrgencyEmergency
	}
	for _, s := range urgentSymptoms {
		byPhrase[s] = model.UrgencyUrgent
	}
	for _, s := range routineSymptoms {
		byPhrase[s] = model.UrgencyRoutine
	}
}

// Lookup returns the bucket for a canned symptom phrase. The second
// return is false for free-text symptoms outside the catalog.
func Lookup(phrase string) (model.Urgency, bool) {
	u, ok := byPhrase[phrase]
	return u, ok
}

// Symptoms returns the catalog entries for one bucket, in display order.
func Symptoms(bucket model.Urgency) []Entry {
	var phrases []string
	switch bucket {
	case model.UrgencyEmergency:
		phrases = emergencySymptoms
	case model.UrgencyUrgent:
		phrases = urgentSymptoms
	case model.UrgencyRoutine:
		phrases = routineSymptoms
	}
	entries := make([]Entry, 0, len(phrases))
	for _, p := range phrases {
		entries = append(entries, Entry{Text: p, Bucket: bucket})
	}
	return entries
}

// All returns the full catalog, most severe bucket first.
func All() []Entry {
	entries := Symptoms(model.UrgencyEmergency)
	entries = append(entries, Symptoms(model.UrgencyUrgent)...)
	entries = append(entries, Symptoms(model.UrgencyRoutine)...)
	return entries
}
