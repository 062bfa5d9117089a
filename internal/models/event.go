package models

import (
	"time"
)

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"event_id"`
	EventName   string    `gorm:"size:100;not null" json:"event_name"`
	EventDate   time.Time `gorm:"not null" json:"event_date"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	VenueID     uint      `gorm:"not null;index" json:"venue_id"`

	Version int `gorm:"not null;default:1" json:"-"`

	Venue    *Venue    `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Bookings []Booking `gorm:"foreignKey:EventID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
