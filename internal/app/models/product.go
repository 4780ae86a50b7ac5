package models

import "time"

// Product is one donated item logged into the store inventory.
type Product struct {
	ID          int64     `json:"id"`
	DonorID     int64     `json:"donorId"`
	CategoryID  int64     `json:"categoryId"`
	Description string    `json:"description,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	DateLogged  time.Time `json:"dateLogged"`

	Donor    *Donor    `json:"donor,omitempty"`
	Category *Category `json:"category,omitempty"`
}
