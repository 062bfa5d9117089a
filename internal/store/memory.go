package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"venuebook/internal/models"
)

// Memory is an in-memory entity store for tests. It mirrors the relational
// semantics the Postgres store relies on: serial ids, version
// compare-and-swap, foreign-key enforcement on insert and delete, and the
// unique (venue, date) booking index.
type Memory struct {
	mu       sync.Mutex
	venues   map[uint]models.Venue
	events   map[uint]models.Event
	bookings map[uint]models.Booking
	nextID   uint
}

func NewMemory() *Memory {
	return &Memory{
		venues:   make(map[uint]models.Venue),
		events:   make(map[uint]models.Event),
		bookings: make(map[uint]models.Booking),
	}
}

func (m *Memory) nextSerial() uint {
	m.nextID++
	return m.nextID
}

func matches(token string, id uint, fields ...string) bool {
	if token == "" {
		return true
	}
	if n, err := strconv.Atoi(token); err == nil && uint(n) == id {
		return true
	}
	for _, f := range fields {
		if strings.Contains(f, token) {
			return true
		}
	}
	return false
}

// Venues

func (m *Memory) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	venue, ok := m.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, e := range m.events {
		if e.VenueID == id {
			venue.Events = append(venue.Events, e)
		}
	}
	for _, b := range m.bookings {
		if b.VenueID == id {
			venue.Bookings = append(venue.Bookings, b)
		}
	}
	return &venue, nil
}

func (m *Memory) ListVenues(ctx context.Context, search string) ([]models.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Venue
	for _, v := range m.venues {
		if matches(search, v.ID, v.VenueName, v.Location) {
			out = append(out, v)
		}
	}
	sortByID(out, func(v models.Venue) uint { return v.ID })
	return out, nil
}

func (m *Memory) InsertVenue(ctx context.Context, venue *models.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	venue.ID = m.nextSerial()
	venue.Version = 1
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt
	m.venues[venue.ID] = *venue
	return nil
}

func (m *Memory) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.venues[venue.ID]
	if !ok || current.Version != venue.Version {
		return ErrVersionMismatch
	}
	venue.Version++
	venue.UpdatedAt = time.Now()
	m.venues[venue.ID] = *venue
	return nil
}

func (m *Memory) DeleteVenue(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[id]; !ok {
		return ErrNotFound
	}
	for _, e := range m.events {
		if e.VenueID == id {
			return ErrReferenced
		}
	}
	for _, b := range m.bookings {
		if b.VenueID == id {
			return ErrReferenced
		}
	}
	delete(m.venues, id)
	return nil
}

func (m *Memory) VenueExists(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.venues[id]
	return ok, nil
}

func (m *Memory) VenueHasEvents(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.VenueID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) VenueHasBookings(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.VenueID == id {
			return true, nil
		}
	}
	return false, nil
}

// Events

func (m *Memory) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if venue, ok := m.venues[event.VenueID]; ok {
		event.Venue = &venue
	}
	for _, b := range m.bookings {
		if b.EventID == id {
			event.Bookings = append(event.Bookings, b)
		}
	}
	return &event, nil
}

func (m *Memory) ListEvents(ctx context.Context, search string) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		venueName := ""
		if venue, ok := m.venues[e.VenueID]; ok {
			v := venue
			e.Venue = &v
			venueName = venue.VenueName
		}
		if matches(search, e.ID, e.EventName, e.Description, venueName) {
			out = append(out, e)
		}
	}
	sortByID(out, func(e models.Event) uint { return e.ID })
	return out, nil
}

func (m *Memory) InsertEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[event.VenueID]; !ok {
		return ErrReferenced
	}
	event.ID = m.nextSerial()
	event.Version = 1
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	m.events[event.ID] = *event
	return nil
}

func (m *Memory) UpdateEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.events[event.ID]
	if !ok || current.Version != event.Version {
		return ErrVersionMismatch
	}
	if _, ok := m.venues[event.VenueID]; !ok {
		return ErrReferenced
	}
	event.Version++
	event.UpdatedAt = time.Now()
	m.events[event.ID] = *event
	return nil
}

func (m *Memory) DeleteEvent(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	for _, b := range m.bookings {
		if b.EventID == id {
			return ErrReferenced
		}
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) EventExists(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.events[id]
	return ok, nil
}

func (m *Memory) EventHasBookings(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.EventID == id {
			return true, nil
		}
	}
	return false, nil
}

// Bookings

func (m *Memory) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (m *Memory) InsertBooking(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[booking.EventID]; !ok {
		return ErrReferenced
	}
	if _, ok := m.venues[booking.VenueID]; !ok {
		return ErrReferenced
	}
	if m.venueBookedLocked(booking.VenueID, booking.BookingDate, 0) {
		return ErrDuplicateBooking
	}
	booking.ID = m.nextSerial()
	booking.Version = 1
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	m.bookings[booking.ID] = *booking
	return nil
}

func (m *Memory) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.bookings[booking.ID]
	if !ok || current.Version != booking.Version {
		return ErrVersionMismatch
	}
	if m.venueBookedLocked(booking.VenueID, booking.BookingDate, booking.ID) {
		return ErrDuplicateBooking
	}
	booking.Version++
	booking.UpdatedAt = time.Now()
	m.bookings[booking.ID] = *booking
	return nil
}

func (m *Memory) DeleteBooking(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *Memory) BookingExists(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.bookings[id]
	return ok, nil
}

func (m *Memory) VenueBookedOn(ctx context.Context, venueID uint, date time.Time, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.venueBookedLocked(venueID, date, excludeID), nil
}

func (m *Memory) venueBookedLocked(venueID uint, date time.Time, excludeID uint) bool {
	for _, b := range m.bookings {
		if b.VenueID == venueID && b.BookingDate.Equal(date) && b.ID != excludeID {
			return true
		}
	}
	return false
}

// Booking summaries

func (m *Memory) ListBookingSummaries(ctx context.Context, search string) ([]models.BookingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BookingSummary
	for _, b := range m.bookings {
		summary := m.summaryLocked(b)
		if matches(search, summary.BookingID, summary.EventName, summary.VenueName) {
			out = append(out, summary)
		}
	}
	sortByID(out, func(s models.BookingSummary) uint { return s.BookingID })
	return out, nil
}

func (m *Memory) GetBookingSummary(ctx context.Context, id uint) (*models.BookingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	summary := m.summaryLocked(booking)
	return &summary, nil
}

func (m *Memory) summaryLocked(b models.Booking) models.BookingSummary {
	event := m.events[b.EventID]
	venue := m.venues[b.VenueID]
	return models.BookingSummary{
		BookingID:   b.ID,
		EventID:     b.EventID,
		VenueID:     b.VenueID,
		BookingDate: b.BookingDate,
		EventName:   event.EventName,
		EventDate:   event.EventDate,
		Description: event.Description,
		VenueName:   venue.VenueName,
		Location:    venue.Location,
		Capacity:    venue.Capacity,
		ImageURL:    venue.ImageURL,
	}
}

func sortByID[T any](items []T, id func(T) uint) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
