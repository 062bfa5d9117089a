package models

import (
	"time"
)

// BookingSummary is the denormalized read model for booking listings: one row
// per booking, flattened with its event and venue. It is computed by joining
// the three base tables at query time and is never stored or written.
type BookingSummary struct {
	BookingID   uint      `json:"booking_id"`
	EventID     uint      `json:"event_id"`
	VenueID     uint      `json:"venue_id"`
	BookingDate time.Time `json:"booking_date"`
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	Description string    `json:"description,omitempty"`
	VenueName   string    `json:"venue_name"`
	Location    string    `json:"location,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
}
