package store

import (
	"context"
	"errors"

	"pawtrack.app/triage/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DogStore defines the contract for dog data access
type DogStore interface {
	GetByID(ctx context.Context, id int64) (*model.Dog, error)
	Create(ctx context.Context, dog *model.Dog) error
	Update(ctx context.Context, dog *model.Dog) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error)
}

// HealthRecordStore defines the contract for health record data access
type HealthRecordStore interface {
	GetByID(ctx context.Context, id int64) (*model.HealthRecord, error)
	Create(ctx context.Context, rec *model.HealthRecord) error
	Delete(ctx context.Context, id int64) error
	// ListRecent returns up to limit records for the dog, most recent first.
	ListRecent(ctx context.Context, dogID int64, limit int32) ([]model.HealthRecord, error)
	ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error)
}
