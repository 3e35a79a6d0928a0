package triage_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pawtrack.app/triage/common/llm"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/triage"
)

func validEmergencyResult() model.EmergencyAssessment {
	return model.EmergencyAssessment{
		UrgencyLevel:     model.UrgencyEmergency,
		TimeFrame:        "immediately",
		Reasoning:        "Seizures in dogs require immediate veterinary attention.",
		ImmediateActions: []string{"Keep the dog away from stairs and furniture", "Call an emergency vet"},
		RedFlags:         []string{"Seizure lasting more than 5 minutes"},
		VetRequired:      true,
	}
}

var _ = Describe("Orchestrator", func() {
	var (
		ctx       context.Context
		llmClient *mockLLMClient
		dogs      *mockDogStore
		records   *mockHealthRecordStore
		orch      *triage.Orchestrator
	)

	birthDate := func(yearsAgo int, extraMonths int) *time.Time {
		t := time.Now().AddDate(-yearsAgo, -extraMonths, 0)
		return &t
	}

	BeforeEach(func() {
		ctx = context.Background()
		llmClient = &mockLLMClient{}
		weight := 28.5
		dogs = &mockDogStore{
			getByIDFn: func(_ context.Context, id int64) (*model.Dog, error) {
				return &model.Dog{
					ID:        id,
					Name:      "Rex",
					Breed:     "German Shepherd",
					BirthDate: birthDate(3, 2),
					WeightKg:  &weight,
				}, nil
			},
		}
		records = &mockHealthRecordStore{}
		orch = triage.NewOrchestrator(llmClient, dogs, records, 0, 0)
	})

	Describe("AssessEmergency", func() {
		input := triage.EmergencyInput{
			DogID:    1,
			Symptoms: []string{"Seizures or convulsions"},
			Duration: "10 minutes",
		}

		Context("when the model responds with a conforming shape", func() {
			It("returns the parsed assessment", func() {
				llmClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					Expect(req.SchemaName).To(Equal("emergency_assessment"))
					*result.(*model.EmergencyAssessment) = validEmergencyResult()
					return &llm.Response{}, nil
				}

				assessment, err := orch.AssessEmergency(ctx, input)
				Expect(err).NotTo(HaveOccurred())
				Expect(assessment.UrgencyLevel).To(Equal(model.UrgencyEmergency))
				Expect(assessment.VetRequired).To(BeTrue())
			})

			It("includes dog context and truncated age in the prompt", func() {
				var prompt string
				llmClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					prompt = req.UserPrompt
					*result.(*model.EmergencyAssessment) = validEmergencyResult()
					return &llm.Response{}, nil
				}

				_, err := orch.AssessEmergency(ctx, input)
				Expect(err).NotTo(HaveOccurred())
				Expect(prompt).To(ContainSubstring("German Shepherd"))
				// born 3 years 2 months ago: still 3, never rounded up
				Expect(prompt).To(ContainSubstring("3 years old"))
				Expect(prompt).To(ContainSubstring("28.5 kg"))
				Expect(prompt).To(ContainSubstring("Seizures or convulsions"))
			})

			It("includes the five most recent health records as history", func() {
				var capturedLimit int32
				records.listRecentFn = func(_ context.Context, _ int64, limit int32) ([]model.HealthRecord, error) {
					capturedLimit = limit
					return []model.HealthRecord{
						{Type: model.RecordTypeVaccination, Title: "Rabies booster"},
						{Type: model.RecordTypeSymptom, Title: "Limping after walk"},
					}, nil
				}
				var prompt string
				llmClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					prompt = req.UserPrompt
					*result.(*model.EmergencyAssessment) = validEmergencyResult()
					return &llm.Response{}, nil
				}

				_, err := orch.AssessEmergency(ctx, input)
				Expect(err).NotTo(HaveOccurred())
				Expect(capturedLimit).To(Equal(int32(5)))
				Expect(prompt).To(ContainSubstring("vaccination: Rabies booster"))
				Expect(prompt).To(ContainSubstring("symptom: Limping after walk"))
			})
		})

		Context("when preconditions are not met", func() {
			It("rejects empty symptoms without contacting any external service", func() {
				_, err := orch.AssessEmergency(ctx, triage.EmergencyInput{DogID: 1})

				var verr *triage.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(llmClient.chatCalls).To(BeZero())
			})

			It("reports a missing dog distinctly from validation errors", func() {
				dogs.getByIDFn = nil // falls back to store.ErrNotFound

				_, err := orch.AssessEmergency(ctx, input)

				var nferr *triage.NotFoundError
				Expect(errors.As(err, &nferr)).To(BeTrue())
				Expect(nferr.Resource).To(Equal("dog"))
				Expect(llmClient.chatCalls).To(BeZero())
			})
		})

		Context("when the model call fails", func() {
			It("classifies an empty body as an external-service failure", func() {
				llmClient.chatFn = func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
					return nil, llm.ErrEmptyResponse
				}

				_, err := orch.AssessEmergency(ctx, input)

				var eserr *triage.ExternalServiceError
				Expect(errors.As(err, &eserr)).To(BeTrue())
				Expect(errors.Is(err, llm.ErrEmptyResponse)).To(BeTrue())
			})

			It("rejects a response that fails shape validation instead of coercing it", func() {
				llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					*result.(*model.EmergencyAssessment) = model.EmergencyAssessment{
						UrgencyLevel: "catastrophic", // not in the taxonomy
						TimeFrame:    "now",
						Reasoning:    "x",
					}
					return &llm.Response{}, nil
				}

				_, err := orch.AssessEmergency(ctx, input)

				var eserr *triage.ExternalServiceError
				Expect(errors.As(err, &eserr)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("shape validation"))
			})

			It("retries a transient network failure and succeeds", func() {
				llmClient.chatFn = func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					if llmClient.chatCalls == 1 {
						return nil, errors.New("connection reset by peer")
					}
					*result.(*model.EmergencyAssessment) = validEmergencyResult()
					return &llm.Response{}, nil
				}

				result, err := orch.AssessEmergency(ctx, input)

				Expect(err).NotTo(HaveOccurred())
				Expect(result).NotTo(BeNil())
				Expect(llmClient.chatCalls).To(Equal(2))
			})

			It("does not retry an empty body", func() {
				llmClient.chatFn = func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
					return nil, llm.ErrEmptyResponse
				}

				_, err := orch.AssessEmergency(ctx, input)

				Expect(err).To(HaveOccurred())
				Expect(llmClient.chatCalls).To(Equal(1))
			})
		})
	})

	Describe("AnalyzeSymptom", func() {
		It("requires type and title before contacting the model", func() {
			_, err := orch.AnalyzeSymptom(ctx, triage.SymptomInput{DogID: 1, Title: "Limping"})
			var verr *triage.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Field).To(Equal("type"))

			_, err = orch.AnalyzeSymptom(ctx, triage.SymptomInput{DogID: 1, Type: "symptom"})
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Field).To(Equal("title"))

			Expect(llmClient.chatCalls).To(BeZero())
		})

		It("returns the parsed analysis for a conforming response", func() {
			llmClient.chatFn = func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
				Expect(req.SchemaName).To(Equal("symptom_analysis"))
				Expect(req.UserPrompt).To(SatisfyAll(
					ContainSubstring("Type: symptom"),
					ContainSubstring("Title: Limping"),
				))
				*result.(*model.SymptomAnalysis) = model.SymptomAnalysis{
					Severity:        "moderate",
					Urgency:         model.UrgencyUrgent,
					Insights:        "Limping after exercise can indicate a soft-tissue injury.",
					Recommendations: []string{"Rest for 48 hours", "See a vet if it persists"},
					VetRequired:     false,
				}
				return &llm.Response{}, nil
			}

			analysis, err := orch.AnalyzeSymptom(ctx, triage.SymptomInput{
				DogID: 1,
				Type:  "symptom",
				Title: "Limping",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(analysis.Urgency).To(Equal(model.UrgencyUrgent))
			Expect(strings.TrimSpace(analysis.Insights)).NotTo(BeEmpty())
		})
	})
})
