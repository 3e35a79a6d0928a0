package triage

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/taxonomy"
)

// Step identifies the wizard step an assessment session is on.
type Step int

const (
	StepIntro Step = iota
	StepSymptomPicker
	StepLocalResult
	StepAIResult
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepSymptomPicker:
		return "symptom_picker"
	case StepLocalResult:
		return "local_result"
	case StepAIResult:
		return "ai_result"
	}
	return "unknown"
}

var (
	ErrUnknownSymptom = errors.New("symptom is not in the quick-select catalog")
	ErrNotStarted     = errors.New("assessment has not moved past the intro step")
	ErrStaleResult    = errors.New("assessment superseded by session reset")
)

// VitalSigns are the free-text vitals an owner can report.
type VitalSigns struct {
	Temperature string `json:"temperature,omitempty"`
	HeartRate   string `json:"heart_rate,omitempty"`
	Breathing   string `json:"breathing,omitempty"`
	GumColor    string `json:"gum_color,omitempty"`
}

// Session is the transient state of one in-progress assessment
// interaction. It lives for exactly one open assessment UI instance and
// is never persisted. There is a single logical mutator (the owning UI);
// the mutex only guards against overlapping HTTP requests.
type Session struct {
	mu              sync.Mutex
	id              string
	dogID           *int64
	step            Step
	symptoms        []string // insertion order = click order, no duplicates
	urgency         model.Urgency
	duration        string
	severity        string
	currentBehavior string
	vitals          VitalSigns
	result          *model.EmergencyAssessment

	// generation invalidates in-flight AI requests on reset/close so a
	// late result is discarded instead of applied to a reset session.
	generation     uint64
	cancelInflight context.CancelFunc
}

func newSession(dogID *int64) *Session {
	return &Session{
		id:    uuid.NewString(),
		dogID: dogID,
		step:  StepIntro,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Continue advances from the intro to the symptom picker. A no-op on
// any later step.
func (s *Session) Continue() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepIntro {
		s.step = StepSymptomPicker
	}
	return s.viewLocked()
}

// ToggleSymptom selects or deselects a canned symptom.
//
// Selecting escalates the derived urgency via the priority rule and,
// on the first selection, advances the picker to the local result
// (single-select quick path). Deselecting recomputes the urgency from
// the full remaining selection, so the aggregate may downgrade.
func (s *Session) ToggleSymptom(phrase string) (View, error) {
	bucket, ok := taxonomy.Lookup(phrase)
	if !ok {
		return View{}, ErrUnknownSymptom
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepIntro {
		return View{}, ErrNotStarted
	}

	if idx := slices.Index(s.symptoms, phrase); idx >= 0 {
		s.symptoms = slices.Delete(s.symptoms, idx, idx+1)
		s.urgency = Aggregate(s.symptoms)
		if len(s.symptoms) == 0 && s.step == StepLocalResult {
			s.step = StepSymptomPicker
		}
		return s.viewLocked(), nil
	}

	s.symptoms = append(s.symptoms, phrase)
	s.urgency = Escalate(s.urgency, bucket)
	if s.step == StepSymptomPicker {
		s.step = StepLocalResult
	}
	return s.viewLocked(), nil
}

// SetDetails records the free-text fields gathered alongside the
// quick-select symptoms.
func (s *Session) SetDetails(duration, severity, currentBehavior string, vitals VitalSigns) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = duration
	s.severity = severity
	s.currentBehavior = currentBehavior
	s.vitals = vitals
	return s.viewLocked()
}

// Reset starts the assessment over: selection, derived urgency, free
// text and any AI result are cleared, and the session returns to the
// symptom picker (step 1, not the intro). Any in-flight AI request is
// abandoned.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
	s.symptoms = nil
	s.urgency = ""
	s.duration = ""
	s.severity = ""
	s.currentBehavior = ""
	s.vitals = VitalSigns{}
	s.result = nil
	s.step = StepSymptomPicker
	return s.viewLocked()
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
}

func (s *Session) abandonLocked() {
	s.generation++
	if s.cancelInflight != nil {
		s.cancelInflight()
		s.cancelInflight = nil
	}
}

// beginAssessment validates preconditions, supersedes any in-flight
// request, and snapshots the input the orchestrator needs. The returned
// context is cancelled if the session is reset or closed mid-flight.
func (s *Session) beginAssessment(parent context.Context) (context.Context, context.CancelFunc, uint64, EmergencyInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepIntro {
		return nil, nil, 0, EmergencyInput{}, ErrNotStarted
	}
	if s.dogID == nil {
		return nil, nil, 0, EmergencyInput{}, NewValidationError("dog_id", "a dog must be selected before requesting an assessment")
	}
	if len(s.symptoms) == 0 {
		return nil, nil, 0, EmergencyInput{}, NewValidationError("symptoms", "at least one symptom must be selected")
	}

	// A new analyze request supersedes a prior one for the same session.
	// Bumping the generation fences the superseded request out:
	// cancellation alone is racy, and a late result carrying the old
	// generation must be discarded, never applied over the newer one.
	if s.cancelInflight != nil {
		s.cancelInflight()
		s.generation++
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancelInflight = cancel

	input := EmergencyInput{
		DogID:           *s.dogID,
		Symptoms:        slices.Clone(s.symptoms),
		Duration:        s.duration,
		Severity:        s.severity,
		CurrentBehavior: s.currentBehavior,
		Vitals:          s.vitals,
	}
	return ctx, cancel, s.generation, input, nil
}

// completeAssessment stores the AI result and advances to the AI-result
// step. Returns false when the session was reset or closed while the
// request was in flight; the result is then discarded wholesale.
func (s *Session) completeAssessment(gen uint64, result *model.EmergencyAssessment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.cancelInflight = nil
	s.result = result
	s.step = StepAIResult
	return true
}

// failAssessment clears the in-flight marker. The step is left exactly
// where it was, so any local result stays visible and retry is possible.
func (s *Session) failAssessment(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.cancelInflight = nil
}

// View is an immutable snapshot of a session for presentation.
type View struct {
	ID              string
	DogID           *int64
	Step            Step
	Symptoms        []string
	Urgency         model.Urgency
	Recommendation  *RecommendationDescriptor
	Duration        string
	Severity        string
	CurrentBehavior string
	Vitals          VitalSigns
	Result          *model.EmergencyAssessment
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:              s.id,
		DogID:           s.dogID,
		Step:            s.step,
		Symptoms:        slices.Clone(s.symptoms),
		Urgency:         s.urgency,
		Duration:        s.duration,
		Severity:        s.severity,
		CurrentBehavior: s.currentBehavior,
		Vitals:          s.vitals,
		Result:          s.result,
	}
	if s.urgency != "" {
		desc := Describe(s.urgency)
		v.Recommendation = &desc
	}
	return v
}
