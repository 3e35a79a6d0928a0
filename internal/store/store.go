package store

import "github.com/jackc/pgx/v5/pgxpool"

// Stores bundles the concrete pgx-backed stores for wiring.
type Stores struct {
	dogs    DogStore
	records HealthRecordStore
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		dogs:    newDogStore(pool),
		records: newHealthRecordStore(pool),
	}
}

func (s *Stores) Dogs() DogStore {
	return s.dogs
}

func (s *Stores) HealthRecords() HealthRecordStore {
	return s.records
}

// WithDogs replaces the dog store, used to layer the redis cache decorator.
func (s *Stores) WithDogs(dogs DogStore) *Stores {
	s.dogs = dogs
	return s
}
