package model

import "time"

type Dog struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Name      string     `json:"name"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightKg  *float64   `json:"weight_kg,omitempty"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AgeYears returns the dog's age in whole years at the given time,
// truncated (a dog of 2 years and 11 months is 2). The second return
// is false when the birth date is unknown.
func (d *Dog) AgeYears(now time.Time) (int, bool) {
	if d.BirthDate == nil {
		return 0, false
	}
	b := *d.BirthDate
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, true
}
