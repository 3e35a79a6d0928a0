package dto

import (
	"time"

	"pawtrack.app/triage/internal/model"
)

type CreateDogRequest struct {
	OwnerID   int64      `json:"owner_id,string" binding:"required"`
	Name      string     `json:"name" binding:"required,min=1,max=255"`
	Breed     string     `json:"breed" binding:"max=255"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightKg  *float64   `json:"weight_kg,omitempty" binding:"omitempty,gt=0"`
	PhotoURL  *string    `json:"photo_url,omitempty" binding:"omitempty,url,max=2048"`
}

type DogResponse struct {
	ID        int64      `json:"id,string"`
	OwnerID   int64      `json:"owner_id,string"`
	Name      string     `json:"name"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightKg  *float64   `json:"weight_kg,omitempty"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToDogResponse(d *model.Dog) *DogResponse {
	return &DogResponse{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Breed:     d.Breed,
		BirthDate: d.BirthDate,
		WeightKg:  d.WeightKg,
		PhotoURL:  d.PhotoURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
