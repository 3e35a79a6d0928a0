package triage_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pawtrack.app/triage/common/llm"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/triage"
)

var _ = Describe("Manager.RequestAssessment", func() {
	var (
		ctx       context.Context
		llmClient *mockLLMClient
		dogs      *mockDogStore
		mgr       *triage.Manager
		dogID     int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		llmClient = &mockLLMClient{}
		dogs = &mockDogStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Dog, error) {
				return &model.Dog{ID: id, Name: "Rex", Breed: "Beagle"}, nil
			},
		}
		orch := triage.NewOrchestrator(llmClient, dogs, &mockHealthRecordStore{}, 0, 0)
		mgr = triage.NewManager(orch)
		dogID = 7
	})

	openWithSymptom := func() *triage.Session {
		view := mgr.Open(&dogID)
		s, err := mgr.Get(view.ID)
		Expect(err).NotTo(HaveOccurred())
		s.Continue()
		_, err = s.ToggleSymptom("Persistent vomiting")
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	It("stores the result and advances to the AI-result step on success", func() {
		llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			*result.(*model.EmergencyAssessment) = validEmergencyResult()
			return &llm.Response{}, nil
		}
		s := openWithSymptom()

		result, err := mgr.RequestAssessment(ctx, s.ID())
		Expect(err).NotTo(HaveOccurred())
		Expect(result).NotTo(BeNil())

		view := s.View()
		Expect(view.Step).To(Equal(triage.StepAIResult))
		Expect(view.Result).To(Equal(result))
	})

	It("replaces the previous result wholesale on a repeat request", func() {
		calls := 0
		llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			calls++
			r := validEmergencyResult()
			if calls > 1 {
				r.UrgencyLevel = model.UrgencyUrgent
				r.TimeFrame = "within 24 hours"
			}
			*result.(*model.EmergencyAssessment) = r
			return &llm.Response{}, nil
		}
		s := openWithSymptom()

		_, err := mgr.RequestAssessment(ctx, s.ID())
		Expect(err).NotTo(HaveOccurred())
		second, err := mgr.RequestAssessment(ctx, s.ID())
		Expect(err).NotTo(HaveOccurred())

		view := s.View()
		Expect(view.Result).To(Equal(second))
		Expect(view.Result.UrgencyLevel).To(Equal(model.UrgencyUrgent))
	})

	It("requires a dog before contacting anything", func() {
		view := mgr.Open(nil)
		s, _ := mgr.Get(view.ID)
		s.Continue()
		_, err := s.ToggleSymptom("Persistent vomiting")
		Expect(err).NotTo(HaveOccurred())

		_, err = mgr.RequestAssessment(ctx, view.ID)
		var verr *triage.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Field).To(Equal("dog_id"))
		Expect(llmClient.chatCalls).To(BeZero())
	})

	It("leaves the session in its pre-call step when the model call fails", func() {
		llmClient.chatFn = func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
			return nil, llm.ErrEmptyResponse
		}
		s := openWithSymptom()
		before := s.View()

		_, err := mgr.RequestAssessment(ctx, s.ID())

		var eserr *triage.ExternalServiceError
		Expect(errors.As(err, &eserr)).To(BeTrue())

		after := s.View()
		Expect(after.Step).To(Equal(before.Step))
		Expect(after.Urgency).To(Equal(before.Urgency), "local result stays visible")
		Expect(after.Result).To(BeNil())
	})

	It("discards a result that lands after the session was reset", func() {
		started := make(chan struct{})
		release := make(chan struct{})
		llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			close(started)
			<-release
			*result.(*model.EmergencyAssessment) = validEmergencyResult()
			return &llm.Response{}, nil
		}
		s := openWithSymptom()

		errCh := make(chan error, 1)
		go func() {
			_, err := mgr.RequestAssessment(ctx, s.ID())
			errCh <- err
		}()

		<-started
		s.Reset()
		close(release)

		Eventually(errCh).Should(Receive(MatchError(triage.ErrStaleResult)))

		view := s.View()
		Expect(view.Result).To(BeNil())
		Expect(view.Step).To(Equal(triage.StepSymptomPicker))
	})

	It("discards a superseded result that lands after its successor", func() {
		started := make(chan struct{})
		release := make(chan struct{})
		first := true
		llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			if first {
				first = false
				close(started)
				<-release
				r := validEmergencyResult()
				r.TimeFrame = "stale"
				*result.(*model.EmergencyAssessment) = r
				return &llm.Response{}, nil
			}
			r := validEmergencyResult()
			r.TimeFrame = "within 24 hours"
			*result.(*model.EmergencyAssessment) = r
			return &llm.Response{}, nil
		}
		s := openWithSymptom()

		errCh := make(chan error, 1)
		go func() {
			_, err := mgr.RequestAssessment(ctx, s.ID())
			errCh <- err
		}()
		<-started

		// Second request supersedes the blocked first one and completes.
		fresh, err := mgr.RequestAssessment(ctx, s.ID())
		Expect(err).NotTo(HaveOccurred())
		Expect(fresh.TimeFrame).To(Equal("within 24 hours"))

		// The first request resolves late; its result must be dropped.
		close(release)
		Eventually(errCh).Should(Receive(MatchError(triage.ErrStaleResult)))

		view := s.View()
		Expect(view.Step).To(Equal(triage.StepAIResult))
		Expect(view.Result).To(Equal(fresh))
	})

	It("fails with a session error for unknown session IDs", func() {
		_, err := mgr.RequestAssessment(ctx, "nope")
		Expect(err).To(MatchError(triage.ErrSessionNotFound))
	})
})
