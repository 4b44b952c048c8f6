package rider

import "time"

// UpdateLocationInput is the UpdateRiderLocationInput of UpdateRiderLocation
type UpdateLocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Heading   *float64 `json:"heading,omitempty"`
}

// Location is the stored rider position
type Location struct {
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   *float64  `json:"heading"`
	UpdatedAt time.Time `json:"updatedAt"`
}
