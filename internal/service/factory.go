package service

import (
	"pawtrack.app/triage/internal/store"
)

type Services struct {
	stores *store.Stores
}

func NewServices(stores *store.Stores) *Services {
	return &Services{stores: stores}
}

func (s *Services) Dogs() DogService {
	return NewDogService(s.stores.Dogs())
}

func (s *Services) HealthRecords() HealthRecordService {
	return NewHealthRecordService(s.stores.HealthRecords(), s.stores.Dogs())
}
