package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"venuebook/internal/models"
)

func day(offset int) time.Time {
	return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seed(t *testing.T, m *Memory) (*models.Venue, *models.Event) {
	t.Helper()
	venue := &models.Venue{VenueName: "Grand Hall", Location: "Cape Town"}
	if err := m.InsertVenue(context.Background(), venue); err != nil {
		t.Fatalf("insert venue: %v", err)
	}
	event := &models.Event{EventName: "Gala", EventDate: day(7), VenueID: venue.ID}
	if err := m.InsertEvent(context.Background(), event); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	return venue, event
}

func TestMemoryVersionCompareAndSwap(t *testing.T) {
	m := NewMemory()
	venue, _ := seed(t, m)
	assert.Equal(t, 1, venue.Version)

	fresh := *venue
	fresh.VenueName = "Grander Hall"
	assert.NoError(t, m.UpdateVenue(context.Background(), &fresh))
	assert.Equal(t, 2, fresh.Version)

	// The first copy still carries version 1; its write must be rejected.
	stale := *venue
	stale.VenueName = "Stale Hall"
	assert.ErrorIs(t, m.UpdateVenue(context.Background(), &stale), ErrVersionMismatch)

	got, err := m.GetVenue(context.Background(), venue.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Grander Hall", got.VenueName)
}

func TestMemoryForeignKeys(t *testing.T) {
	m := NewMemory()
	venue, event := seed(t, m)

	// Inserts against missing parents fail.
	assert.ErrorIs(t, m.InsertEvent(context.Background(), &models.Event{
		EventName: "Orphan", EventDate: day(7), VenueID: venue.ID + 99,
	}), ErrReferenced)
	assert.ErrorIs(t, m.InsertBooking(context.Background(), &models.Booking{
		EventID: event.ID + 99, VenueID: venue.ID, BookingDate: day(7),
	}), ErrReferenced)

	// Deletes with dependents fail; childless deletes cascade bottom-up.
	booking := &models.Booking{EventID: event.ID, VenueID: venue.ID, BookingDate: day(7)}
	assert.NoError(t, m.InsertBooking(context.Background(), booking))

	assert.ErrorIs(t, m.DeleteVenue(context.Background(), venue.ID), ErrReferenced)
	assert.ErrorIs(t, m.DeleteEvent(context.Background(), event.ID), ErrReferenced)

	assert.NoError(t, m.DeleteBooking(context.Background(), booking.ID))
	assert.NoError(t, m.DeleteEvent(context.Background(), event.ID))
	assert.NoError(t, m.DeleteVenue(context.Background(), venue.ID))
	assert.ErrorIs(t, m.DeleteVenue(context.Background(), venue.ID), ErrNotFound)
}

func TestMemoryUniqueBookingDate(t *testing.T) {
	m := NewMemory()
	venue, event := seed(t, m)

	first := &models.Booking{EventID: event.ID, VenueID: venue.ID, BookingDate: day(7)}
	assert.NoError(t, m.InsertBooking(context.Background(), first))

	dup := &models.Booking{EventID: event.ID, VenueID: venue.ID, BookingDate: day(7)}
	assert.ErrorIs(t, m.InsertBooking(context.Background(), dup), ErrDuplicateBooking)

	// A different date is fine, and updating it onto the taken date is not.
	second := &models.Booking{EventID: event.ID, VenueID: venue.ID, BookingDate: day(8)}
	assert.NoError(t, m.InsertBooking(context.Background(), second))

	moved := *second
	moved.BookingDate = day(7)
	assert.ErrorIs(t, m.UpdateBooking(context.Background(), &moved), ErrDuplicateBooking)

	// Re-saving a booking on its own date excludes itself from the check.
	same := *second
	assert.NoError(t, m.UpdateBooking(context.Background(), &same))

	booked, err := m.VenueBookedOn(context.Background(), venue.ID, day(7), 0)
	assert.NoError(t, err)
	assert.True(t, booked)

	booked, err = m.VenueBookedOn(context.Background(), venue.ID, day(7), first.ID)
	assert.NoError(t, err)
	assert.False(t, booked)
}

func TestMemorySummaryJoinsBaseTables(t *testing.T) {
	m := NewMemory()
	venue, event := seed(t, m)
	capacity := 750
	venue.Capacity = &capacity
	assert.NoError(t, m.UpdateVenue(context.Background(), venue))

	booking := &models.Booking{EventID: event.ID, VenueID: venue.ID, BookingDate: day(7)}
	assert.NoError(t, m.InsertBooking(context.Background(), booking))

	summary, err := m.GetBookingSummary(context.Background(), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, booking.ID, summary.BookingID)
	assert.Equal(t, "Gala", summary.EventName)
	assert.Equal(t, "Grand Hall", summary.VenueName)
	assert.Equal(t, "Cape Town", summary.Location)
	assert.Equal(t, &capacity, summary.Capacity)

	_, err = m.GetBookingSummary(context.Background(), booking.ID+99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySearch(t *testing.T) {
	m := NewMemory()
	venue, _ := seed(t, m)
	other := &models.Venue{VenueName: "Dockside Arena", Location: "Durban"}
	assert.NoError(t, m.InsertVenue(context.Background(), other))

	all, err := m.ListVenues(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	byLocation, err := m.ListVenues(context.Background(), "Durb")
	assert.NoError(t, err)
	assert.Len(t, byLocation, 1)
	assert.Equal(t, other.ID, byLocation[0].ID)

	// A numeric token matches on id even when no text field contains it.
	byID, err := m.ListVenues(context.Background(), "1")
	assert.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, venue.ID, byID[0].ID)
}
