package models

import (
	"time"
)

// Booking reserves a venue for an event on a calendar date. The composite
// unique index on (venue_id, booking_date) is the authoritative guard against
// double-booking; the application-level check only produces the friendlier,
// field-tagged rejection.
type Booking struct {
	ID          uint      `gorm:"primaryKey" json:"booking_id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	VenueID     uint      `gorm:"not null;uniqueIndex:ux_bookings_venue_date" json:"venue_id"`
	BookingDate time.Time `gorm:"not null;type:date;uniqueIndex:ux_bookings_venue_date" json:"booking_date"`

	Version int `gorm:"not null;default:1" json:"-"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
