package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack.app/triage/internal/model"
)

type dogStore struct {
	pool *pgxpool.Pool
}

func newDogStore(pool *pgxpool.Pool) DogStore {
	return &dogStore{pool: pool}
}

const dogColumns = `id, owner_id, name, breed, birth_date, weight_kg, photo_url, created_at, updated_at`

func (s *dogStore) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+dogColumns+` FROM dogs WHERE id = $1 AND deleted_at IS NULL`, id)
	dog, err := scanDog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dog, nil
}

func (s *dogStore) Create(ctx context.Context, dog *model.Dog) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO dogs (id, owner_id, name, breed, birth_date, weight_kg, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+dogColumns,
		dog.ID, dog.OwnerID, dog.Name, dog.Breed, dog.BirthDate, dog.WeightKg, dog.PhotoURL)
	created, err := scanDog(row)
	if err != nil {
		return err
	}
	*dog = *created
	return nil
}

func (s *dogStore) Update(ctx context.Context, dog *model.Dog) error {
	row := s.pool.QueryRow(ctx,
		`UPDATE dogs
		 SET name = $2, breed = $3, birth_date = $4, weight_kg = $5, photo_url = $6, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+dogColumns,
		dog.ID, dog.Name, dog.Breed, dog.BirthDate, dog.WeightKg, dog.PhotoURL)
	updated, err := scanDog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*dog = *updated
	return nil
}

func (s *dogStore) Delete(ctx context.Context, id int64) error {
	// soft delete
	_, err := s.pool.Exec(ctx,
		`UPDATE dogs SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

func (s *dogStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Dog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+dogColumns+` FROM dogs WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dogs []model.Dog
	for rows.Next() {
		dog, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		dogs = append(dogs, *dog)
	}
	return dogs, rows.Err()
}

func scanDog(row pgx.Row) (*model.Dog, error) {
	var dog model.Dog
	err := row.Scan(
		&dog.ID, &dog.OwnerID, &dog.Name, &dog.Breed,
		&dog.BirthDate, &dog.WeightKg, &dog.PhotoURL,
		&dog.CreatedAt, &dog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dog, nil
}
