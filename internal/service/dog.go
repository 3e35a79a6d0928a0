package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pawtrack.app/triage/common/id"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/store"
)

type CreateDogInput struct {
	OwnerID   int64
	Name      string
	Breed     string
	BirthDate *time.Time
	WeightKg  *float64
	PhotoURL  *string
}

type DogService interface {
	Create(ctx context.Context, input CreateDogInput) (*model.Dog, error)
	GetByID(ctx context.Context, id int64) (*model.Dog, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error)
	Delete(ctx context.Context, id int64) error
}

type dogService struct {
	dogStore store.DogStore
}

func NewDogService(dogStore store.DogStore) DogService {
	return &dogService{dogStore: dogStore}
}

func (s *dogService) Create(ctx context.Context, input CreateDogInput) (*model.Dog, error) {
	dog := &model.Dog{
		ID:        id.New(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Breed:     input.Breed,
		BirthDate: input.BirthDate,
		WeightKg:  input.WeightKg,
		PhotoURL:  input.PhotoURL,
	}

	if err := s.dogStore.Create(ctx, dog); err != nil {
		slog.ErrorContext(ctx, "failed to create dog",
			"error", err,
			"owner_id", input.OwnerID,
		)
		return nil, fmt.Errorf("creating dog: %w", err)
	}

	slog.InfoContext(ctx, "dog created", "dog_id", dog.ID)
	return dog, nil
}

func (s *dogService) GetByID(ctx context.Context, dogID int64) (*model.Dog, error) {
	return s.dogStore.GetByID(ctx, dogID)
}

func (s *dogService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	dogs, err := s.dogStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing dogs: %w", err)
	}
	return dogs, nil
}

func (s *dogService) Delete(ctx context.Context, dogID int64) error {
	if err := s.dogStore.Delete(ctx, dogID); err != nil {
		slog.ErrorContext(ctx, "failed to delete dog",
			"error", err,
			"dog_id", dogID,
		)
		return fmt.Errorf("deleting dog: %w", err)
	}
	slog.InfoContext(ctx, "dog deleted", "dog_id", dogID)
	return nil
}
