package services

import (
	"context"
	"time"

	"venuebook/internal/models"
	"venuebook/internal/store"
)

// EntityStore is the persistence contract the services coordinate against.
// Implementations: store.Store (Postgres) and store.Memory (tests). Update
// methods compare-and-swap on the row version and return
// store.ErrVersionMismatch for stale writes; deletes return
// store.ErrReferenced when a foreign key blocks them.
type EntityStore interface {
	GetVenue(ctx context.Context, id uint) (*models.Venue, error)
	ListVenues(ctx context.Context, search string) ([]models.Venue, error)
	InsertVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, venue *models.Venue) error
	DeleteVenue(ctx context.Context, id uint) error
	VenueExists(ctx context.Context, id uint) (bool, error)
	VenueHasEvents(ctx context.Context, id uint) (bool, error)
	VenueHasBookings(ctx context.Context, id uint) (bool, error)

	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, search string) ([]models.Event, error)
	InsertEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error
	EventExists(ctx context.Context, id uint) (bool, error)
	EventHasBookings(ctx context.Context, id uint) (bool, error)

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	InsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error
	BookingExists(ctx context.Context, id uint) (bool, error)
	VenueBookedOn(ctx context.Context, venueID uint, date time.Time, excludeID uint) (bool, error)

	ListBookingSummaries(ctx context.Context, search string) ([]models.BookingSummary, error)
	GetBookingSummary(ctx context.Context, id uint) (*models.BookingSummary, error)
}

var (
	_ EntityStore = (*store.Store)(nil)
	_ EntityStore = (*store.Memory)(nil)
)
