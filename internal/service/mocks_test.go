package service_test

import (
	"context"

	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/store"
)

type mockDogStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Dog, error)
	createFn  func(ctx context.Context, dog *model.Dog) error
	deleteFn  func(ctx context.Context, id int64) error
	listFn    func(ctx context.Context, ownerID int64) ([]model.Dog, error)
}

func (m *mockDogStore) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockDogStore) Create(ctx context.Context, dog *model.Dog) error {
	if m.createFn != nil {
		return m.createFn(ctx, dog)
	}
	return nil
}

func (m *mockDogStore) Update(ctx context.Context, dog *model.Dog) error { return nil }

func (m *mockDogStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockDogStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

type mockHealthRecordStore struct {
	createFn    func(ctx context.Context, rec *model.HealthRecord) error
	listByDogFn func(ctx context.Context, dogID int64) ([]model.HealthRecord, error)
	deleteFn    func(ctx context.Context, id int64) error
}

func (m *mockHealthRecordStore) GetByID(ctx context.Context, id int64) (*model.HealthRecord, error) {
	return nil, store.ErrNotFound
}

func (m *mockHealthRecordStore) Create(ctx context.Context, rec *model.HealthRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	return nil
}

func (m *mockHealthRecordStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockHealthRecordStore) ListRecent(ctx context.Context, dogID int64, limit int32) ([]model.HealthRecord, error) {
	return nil, nil
}

func (m *mockHealthRecordStore) ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error) {
	if m.listByDogFn != nil {
		return m.listByDogFn(ctx, dogID)
	}
	return nil, nil
}
