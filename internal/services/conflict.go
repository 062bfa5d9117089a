package services

import (
	"context"
	"time"
)

// ConflictChecker decides whether a proposed (venue, date) reservation
// collides with an existing booking. It is the fast-path rejection; the
// unique index on bookings(venue_id, booking_date) remains the authoritative
// guard under concurrent writers.
type ConflictChecker struct {
	store EntityStore
}

func NewConflictChecker(store EntityStore) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// IsDoubleBooked reports whether a booking other than excludeBookingID
// already holds venueID on date. Pass excludeBookingID zero on create; on
// update pass the booking being edited so it can keep its own date.
func (c *ConflictChecker) IsDoubleBooked(ctx context.Context, venueID uint, date time.Time, excludeBookingID uint) (bool, error) {
	return c.store.VenueBookedOn(ctx, venueID, date, excludeBookingID)
}
