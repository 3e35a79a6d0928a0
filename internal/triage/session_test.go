package triage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/triage"
)

var _ = Describe("Session", func() {
	var (
		mgr   *triage.Manager
		dogID int64
	)

	BeforeEach(func() {
		mgr = triage.NewManager(nil)
		dogID = 42
	})

	open := func() *triage.Session {
		view := mgr.Open(&dogID)
		s, err := mgr.Get(view.ID)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	Describe("step transitions", func() {
		It("starts on the intro step", func() {
			s := open()
			Expect(s.View().Step).To(Equal(triage.StepIntro))
		})

		It("advances to the symptom picker on continue", func() {
			s := open()
			view := s.Continue()
			Expect(view.Step).To(Equal(triage.StepSymptomPicker))
		})

		It("rejects symptom toggles before the intro is dismissed", func() {
			s := open()
			_, err := s.ToggleSymptom("Minor scratching")
			Expect(err).To(MatchError(triage.ErrNotStarted))
		})

		It("shows the local result immediately on the first selection", func() {
			s := open()
			s.Continue()

			view, err := s.ToggleSymptom("Seizures or convulsions")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Step).To(Equal(triage.StepLocalResult))
			Expect(view.Urgency).To(Equal(model.UrgencyEmergency))
			Expect(view.Recommendation).NotTo(BeNil())
			Expect(view.Recommendation.Title).To(Equal("Emergency care needed"))
		})
	})

	Describe("symptom selection", func() {
		var s *triage.Session

		BeforeEach(func() {
			s = open()
			s.Continue()
		})

		It("escalates from routine to urgent without downgrading", func() {
			_, err := s.ToggleSymptom("Minor scratching")
			Expect(err).NotTo(HaveOccurred())

			view, err := s.ToggleSymptom("Persistent vomiting")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Urgency).To(Equal(model.UrgencyUrgent))
			Expect(view.Symptoms).To(Equal([]string{"Minor scratching", "Persistent vomiting"}))
		})

		It("keeps click order and excludes duplicates", func() {
			s.ToggleSymptom("Persistent vomiting")
			s.ToggleSymptom("Minor scratching")
			// toggling again deselects rather than duplicating
			view, err := s.ToggleSymptom("Minor scratching")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Symptoms).To(Equal([]string{"Persistent vomiting"}))
		})

		It("recomputes urgency from the full selection on deselect", func() {
			s.ToggleSymptom("Minor scratching")
			s.ToggleSymptom("Persistent vomiting")

			view, err := s.ToggleSymptom("Persistent vomiting")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Urgency).To(Equal(model.UrgencyRoutine))
		})

		It("returns to the picker when the last symptom is deselected", func() {
			s.ToggleSymptom("Minor scratching")
			view, err := s.ToggleSymptom("Minor scratching")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Symptoms).To(BeEmpty())
			Expect(view.Urgency).To(Equal(model.Urgency("")))
			Expect(view.Step).To(Equal(triage.StepSymptomPicker))
		})

		It("rejects phrases outside the catalog", func() {
			_, err := s.ToggleSymptom("my dog ate my homework")
			Expect(err).To(MatchError(triage.ErrUnknownSymptom))
		})
	})

	Describe("Reset", func() {
		It("clears everything and returns to step 1, not the intro", func() {
			s := open()
			s.Continue()
			s.ToggleSymptom("Seizures or convulsions")
			s.SetDetails("2 hours", "severe", "lethargic", triage.VitalSigns{GumColor: "pale"})

			view := s.Reset()
			Expect(view.Step).To(Equal(triage.StepSymptomPicker))
			Expect(view.Symptoms).To(BeEmpty())
			Expect(view.Urgency).To(Equal(model.Urgency("")))
			Expect(view.Duration).To(BeEmpty())
			Expect(view.Vitals).To(Equal(triage.VitalSigns{}))
			Expect(view.Result).To(BeNil())
		})
	})

	Describe("Manager", func() {
		It("forgets closed sessions", func() {
			view := mgr.Open(&dogID)
			mgr.Close(view.ID)
			_, err := mgr.Get(view.ID)
			Expect(err).To(MatchError(triage.ErrSessionNotFound))
		})
	})
})
