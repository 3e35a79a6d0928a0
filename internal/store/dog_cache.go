package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pawtrack.app/triage/internal/model"
)

// CachedDogStore is a read-through redis cache in front of a DogStore.
// Dog context (breed, birth date, weight) is read on every assessment,
// so lookups are cached with a short TTL and invalidated on writes.
// Cache failures degrade to the inner store, never to an error.
type CachedDogStore struct {
	inner DogStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedDogStore(inner DogStore, client *redis.Client, ttl time.Duration) *CachedDogStore {
	return &CachedDogStore{inner: inner, redis: client, ttl: ttl}
}

func dogKey(id int64) string {
	return fmt.Sprintf("dog_ctx:%d", id)
}

func (s *CachedDogStore) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	raw, err := s.redis.Get(ctx, dogKey(id)).Bytes()
	if err == nil {
		var dog model.Dog
		if err := json.Unmarshal(raw, &dog); err == nil {
			return &dog, nil
		}
		// corrupt entry: fall through to the store and overwrite
	} else if err != redis.Nil {
		slog.WarnContext(ctx, "dog cache read failed", "error", err, "dog_id", id)
	}

	dog, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(dog); err == nil {
		if err := s.redis.Set(ctx, dogKey(id), raw, s.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "dog cache write failed", "error", err, "dog_id", id)
		}
	}
	return dog, nil
}

func (s *CachedDogStore) Create(ctx context.Context, dog *model.Dog) error {
	return s.inner.Create(ctx, dog)
}

func (s *CachedDogStore) Update(ctx context.Context, dog *model.Dog) error {
	if err := s.inner.Update(ctx, dog); err != nil {
		return err
	}
	s.invalidate(ctx, dog.ID)
	return nil
}

func (s *CachedDogStore) Delete(ctx context.Context, id int64) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedDogStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	return s.inner.ListByOwner(ctx, ownerID)
}

func (s *CachedDogStore) invalidate(ctx context.Context, id int64) {
	if err := s.redis.Del(ctx, dogKey(id)).Err(); err != nil {
		slog.WarnContext(ctx, "dog cache invalidation failed", "error", err, "dog_id", id)
	}
}
