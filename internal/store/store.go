// Package store is the persistence layer: GORM-backed CRUD for venues,
// events and bookings, existence/dependent checks, optimistic-version
// updates and the computed booking-summary projection.
package store

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"venuebook/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func likePattern(s string) string {
	return "%" + s + "%"
}

func (s *Store) count(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// Venues

func (s *Store) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).
		Preload("Events").
		Preload("Bookings").
		First(&venue, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &venue, nil
}

// ListVenues returns venues, optionally filtered by a search token. An
// integer token matches the numeric id exactly or the free-text fields by
// substring; any other token matches the free-text fields only.
func (s *Store) ListVenues(ctx context.Context, search string) ([]models.Venue, error) {
	query := s.db.WithContext(ctx).Model(&models.Venue{})
	if search != "" {
		pattern := likePattern(search)
		if id, err := strconv.Atoi(search); err == nil {
			query = query.Where("id = ? OR venue_name LIKE ? OR location LIKE ?", id, pattern, pattern)
		} else {
			query = query.Where("venue_name LIKE ? OR location LIKE ?", pattern, pattern)
		}
	}

	var venues []models.Venue
	if err := query.Order("id").Find(&venues).Error; err != nil {
		return nil, translate(err)
	}
	return venues, nil
}

func (s *Store) InsertVenue(ctx context.Context, venue *models.Venue) error {
	venue.Version = 1
	return translate(s.db.WithContext(ctx).Create(venue).Error)
}

// UpdateVenue applies the venue's fields with a compare-and-swap on Version.
// ErrVersionMismatch means the row was modified or deleted since it was read.
func (s *Store) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	res := s.db.WithContext(ctx).Model(&models.Venue{}).
		Where("id = ? AND version = ?", venue.ID, venue.Version).
		Updates(map[string]any{
			"venue_name": venue.VenueName,
			"location":   venue.Location,
			"capacity":   venue.Capacity,
			"image_url":  venue.ImageURL,
			"version":    venue.Version + 1,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	venue.Version++
	return nil
}

func (s *Store) DeleteVenue(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Venue{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) VenueExists(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Venue{}, "id = ?", id)
}

func (s *Store) VenueHasEvents(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Event{}, "venue_id = ?", id)
}

func (s *Store) VenueHasBookings(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Booking{}, "venue_id = ?", id)
}

// Events

func (s *Store) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Venue").
		Preload("Bookings").
		First(&event, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// ListEvents returns events with their venue preloaded. The search token also
// matches the owning venue's name, so the listing joins venues.
func (s *Store) ListEvents(ctx context.Context, search string) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{}).
		Joins("LEFT JOIN venues ON venues.id = events.venue_id")
	if search != "" {
		pattern := likePattern(search)
		if id, err := strconv.Atoi(search); err == nil {
			query = query.Where(
				"events.id = ? OR events.event_name LIKE ? OR events.description LIKE ? OR venues.venue_name LIKE ?",
				id, pattern, pattern, pattern)
		} else {
			query = query.Where(
				"events.event_name LIKE ? OR events.description LIKE ? OR venues.venue_name LIKE ?",
				pattern, pattern, pattern)
		}
	}

	var events []models.Event
	if err := query.Preload("Venue").Order("events.id").Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *Store) InsertEvent(ctx context.Context, event *models.Event) error {
	event.Version = 1
	return translate(s.db.WithContext(ctx).Create(event).Error)
}

func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND version = ?", event.ID, event.Version).
		Updates(map[string]any{
			"event_name":  event.EventName,
			"event_date":  event.EventDate,
			"description": event.Description,
			"venue_id":    event.VenueID,
			"version":     event.Version + 1,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	event.Version++
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Event{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EventExists(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Event{}, "id = ?", id)
}

func (s *Store) EventHasBookings(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Booking{}, "event_id = ?", id)
}

// Bookings

func (s *Store) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *Store) InsertBooking(ctx context.Context, booking *models.Booking) error {
	booking.Version = 1
	return translate(s.db.WithContext(ctx).Create(booking).Error)
}

func (s *Store) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND version = ?", booking.ID, booking.Version).
		Updates(map[string]any{
			"event_id":     booking.EventID,
			"venue_id":     booking.VenueID,
			"booking_date": booking.BookingDate,
			"version":      booking.Version + 1,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	booking.Version++
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) BookingExists(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, &models.Booking{}, "id = ?", id)
}

// VenueBookedOn reports whether any booking other than excludeID holds the
// venue on the given date. excludeID zero means no exclusion.
func (s *Store) VenueBookedOn(ctx context.Context, venueID uint, date time.Time, excludeID uint) (bool, error) {
	return s.count(ctx, &models.Booking{},
		"venue_id = ? AND booking_date = ? AND id <> ?", venueID, date, excludeID)
}

// Booking summaries

const summarySelect = `
SELECT b.id AS booking_id, b.event_id, b.venue_id, b.booking_date,
       e.event_name, e.event_date, e.description,
       v.venue_name, v.location, v.capacity, v.image_url
FROM bookings b
JOIN events e ON e.id = b.event_id
JOIN venues v ON v.id = b.venue_id`

// ListBookingSummaries joins bookings with their event and venue at query
// time, so the projection can never drift from the base tables.
func (s *Store) ListBookingSummaries(ctx context.Context, search string) ([]models.BookingSummary, error) {
	var (
		sql  = summarySelect
		args []any
	)
	if search != "" {
		pattern := likePattern(search)
		if id, err := strconv.Atoi(search); err == nil {
			sql += " WHERE b.id = ? OR e.event_name LIKE ? OR v.venue_name LIKE ?"
			args = append(args, id, pattern, pattern)
		} else {
			sql += " WHERE e.event_name LIKE ? OR v.venue_name LIKE ?"
			args = append(args, pattern, pattern)
		}
	}
	sql += " ORDER BY b.id"

	var summaries []models.BookingSummary
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(&summaries).Error; err != nil {
		return nil, translate(err)
	}
	return summaries, nil
}

func (s *Store) GetBookingSummary(ctx context.Context, id uint) (*models.BookingSummary, error) {
	var summary models.BookingSummary
	res := s.db.WithContext(ctx).Raw(summarySelect+" WHERE b.id = ?", id).Scan(&summary)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &summary, nil
}
