package models

import (
	"time"
)

type Venue struct {
	ID        uint   `gorm:"primaryKey" json:"venue_id"`
	VenueName string `gorm:"size:100;not null" json:"venue_name"`
	Location  string `gorm:"size:200" json:"location,omitempty"`
	Capacity  *int   `json:"capacity,omitempty"`
	ImageURL  string `gorm:"size:255" json:"image_url,omitempty"`

	// Bumped on every successful update; stale writers are rejected.
	Version int `gorm:"not null;default:1" json:"-"`

	Events   []Event   `gorm:"foreignKey:VenueID" json:"events,omitempty"`
	Bookings []Booking `gorm:"foreignKey:VenueID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
