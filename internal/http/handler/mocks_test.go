package handler_test

import (
	"context"
	"time"

	"pawtrack.app/triage/common/llm"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/service"
	"pawtrack.app/triage/internal/store"
	"pawtrack.app/triage/internal/triage"
)

type mockAnalyzer struct {
	analyzeSymptomFn func(ctx context.Context, input triage.SymptomInput) (*model.SymptomAnalysis, error)
	analyzePhotoFn   func(ctx context.Context, input triage.PhotoInput) (*model.PhotoAnalysis, error)
	batchFn          func(ctx context.Context, inputs []triage.PhotoInput) []triage.PhotoResult
}

func (m *mockAnalyzer) AnalyzeSymptom(ctx context.Context, input triage.SymptomInput) (*model.SymptomAnalysis, error) {
	if m.analyzeSymptomFn != nil {
		return m.analyzeSymptomFn(ctx, input)
	}
	return &model.SymptomAnalysis{}, nil
}

func (m *mockAnalyzer) AnalyzePhoto(ctx context.Context, input triage.PhotoInput) (*model.PhotoAnalysis, error) {
	if m.analyzePhotoFn != nil {
		return m.analyzePhotoFn(ctx, input)
	}
	return &model.PhotoAnalysis{}, nil
}

func (m *mockAnalyzer) AnalyzePhotoBatch(ctx context.Context, inputs []triage.PhotoInput) []triage.PhotoResult {
	if m.batchFn != nil {
		return m.batchFn(ctx, inputs)
	}
	return make([]triage.PhotoResult, len(inputs))
}

type mockLLMClient struct {
	chatFn func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, req, result)
	}
	return &llm.Response{}, nil
}

func (m *mockLLMClient) AnalyzeImage(ctx context.Context, req llm.ImageRequest, result any) (*llm.Response, error) {
	return &llm.Response{}, nil
}

func (m *mockLLMClient) Model() string { return "mock" }

type mockDogStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Dog, error)
}

func (m *mockDogStore) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Dog{ID: id, Name: "Rex", Breed: "Beagle"}, nil
}

func (m *mockDogStore) Create(ctx context.Context, dog *model.Dog) error { return nil }
func (m *mockDogStore) Update(ctx context.Context, dog *model.Dog) error { return nil }
func (m *mockDogStore) Delete(ctx context.Context, id int64) error       { return nil }
func (m *mockDogStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	return nil, nil
}

type mockHealthRecordStore struct{}

func (m *mockHealthRecordStore) GetByID(ctx context.Context, id int64) (*model.HealthRecord, error) {
	return nil, store.ErrNotFound
}

func (m *mockHealthRecordStore) Create(ctx context.Context, rec *model.HealthRecord) error {
	return nil
}

func (m *mockHealthRecordStore) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockHealthRecordStore) ListRecent(ctx context.Context, dogID int64, limit int32) ([]model.HealthRecord, error) {
	return nil, nil
}

func (m *mockHealthRecordStore) ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error) {
	return nil, nil
}

type mockDogService struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Dog, error)
	createFn  func(ctx context.Context, input service.CreateDogInput) (*model.Dog, error)
}

func (m *mockDogService) Create(ctx context.Context, input service.CreateDogInput) (*model.Dog, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Dog{ID: 1, OwnerID: input.OwnerID, Name: input.Name}, nil
}

func (m *mockDogService) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockDogService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	return nil, nil
}

func (m *mockDogService) Delete(ctx context.Context, id int64) error { return nil }

type mockHealthRecordService struct {
	logAssessmentFn func(ctx context.Context, dogID int64, assessment *model.EmergencyAssessment) (*model.HealthRecord, error)
	createFn        func(ctx context.Context, input service.CreateHealthRecordInput) (*model.HealthRecord, error)
}

func (m *mockHealthRecordService) Create(ctx context.Context, input service.CreateHealthRecordInput) (*model.HealthRecord, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.HealthRecord{ID: 1, DogID: input.DogID, Type: input.Type, Title: input.Title, RecordedAt: time.Now()}, nil
}

func (m *mockHealthRecordService) ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error) {
	return nil, nil
}

func (m *mockHealthRecordService) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockHealthRecordService) LogAssessment(ctx context.Context, dogID int64, assessment *model.EmergencyAssessment) (*model.HealthRecord, error) {
	if m.logAssessmentFn != nil {
		return m.logAssessmentFn(ctx, dogID, assessment)
	}
	return &model.HealthRecord{ID: 1, DogID: dogID, Type: model.RecordTypeSymptom}, nil
}
