package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"venuebook/internal/models"
	"venuebook/internal/store"
)

func TestCreateEventValidation(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	svc := NewEventService(mem)

	tests := []struct {
		name  string
		in    EventInput
		field string
	}{
		{"missing name", EventInput{EventDate: nextWeek(), VenueID: venue.ID}, "event_name"},
		{"name too long", EventInput{EventName: strings.Repeat("x", 101), EventDate: nextWeek(), VenueID: venue.ID}, "event_name"},
		{"missing date", EventInput{EventName: "Gala", VenueID: venue.ID}, "event_date"},
		{"past date", EventInput{EventName: "Gala", EventDate: today().AddDate(0, 0, -1), VenueID: venue.ID}, "event_date"},
		{"missing venue", EventInput{EventName: "Gala", EventDate: nextWeek()}, "venue_id"},
		{"unknown venue", EventInput{EventName: "Gala", EventDate: nextWeek(), VenueID: venue.ID + 99}, "venue_id"},
		{"description too long", EventInput{EventName: "Gala", EventDate: nextWeek(), VenueID: venue.ID, Description: strings.Repeat("x", 501)}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			var verrs ValidationErrors
			assert.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestCreateEvent(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	svc := NewEventService(mem)

	event, err := svc.Create(context.Background(), EventInput{
		EventName: "Gala",
		EventDate: nextWeek(),
		VenueID:   venue.ID,
	})
	assert.NoError(t, err)
	assert.NotZero(t, event.ID)

	got, err := svc.Get(context.Background(), event.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Gala", got.EventName)
	assert.NotNil(t, got.Venue)
	assert.Equal(t, "Grand Hall", got.Venue.VenueName)
}

func TestUpdateEventIDMismatch(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	event := seedEvent(t, mem, "Gala", venue.ID)
	svc := NewEventService(mem)

	_, err := svc.Update(context.Background(), event.ID, EventInput{
		ID: event.ID + 1, EventName: "Gala", EventDate: nextWeek(), VenueID: venue.ID,
	})
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

type staleEventStore struct {
	EntityStore
	exists bool
}

func (s *staleEventStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	return store.ErrVersionMismatch
}

func (s *staleEventStore) EventExists(ctx context.Context, id uint) (bool, error) {
	return s.exists, nil
}

func TestUpdateEventConcurrentModificationKeepsEdits(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	event := seedEvent(t, mem, "Gala", venue.ID)

	in := EventInput{ID: event.ID, EventName: "Winter Gala", EventDate: nextWeek(), VenueID: venue.ID}

	svc := NewEventService(&staleEventStore{EntityStore: mem, exists: true})
	echoed, err := svc.Update(context.Background(), event.ID, in)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, ReasonConcurrentModification, conflict.Reason)
	assert.Equal(t, "Winter Gala", echoed.EventName)

	svc = NewEventService(&staleEventStore{EntityStore: mem, exists: false})
	_, err = svc.Update(context.Background(), event.ID, in)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteEventBlockedByBookings(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	event := seedEvent(t, mem, "Gala", venue.ID)
	bookings := NewBookingService(mem)
	svc := NewEventService(mem)

	_, err := bookings.Create(context.Background(), BookingInput{
		EventID: event.ID, VenueID: venue.ID, BookingDate: nextWeek(),
	})
	assert.NoError(t, err)

	err = svc.Delete(context.Background(), event.ID)
	var dependents *DependentsError
	assert.ErrorAs(t, err, &dependents)
	assert.Equal(t, KindEvent, dependents.Kind)
}

func TestDeleteEventWithoutBookings(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	event := seedEvent(t, mem, "Gala", venue.ID)
	svc := NewEventService(mem)

	assert.NoError(t, svc.Delete(context.Background(), event.ID))

	var notFound *NotFoundError
	assert.ErrorAs(t, svc.Delete(context.Background(), event.ID), &notFound)
}

func TestEventSearchIncludesVenueName(t *testing.T) {
	mem := store.NewMemory()
	venue := seedVenue(t, mem, "Grand Hall")
	seedEvent(t, mem, "Gala", venue.ID)
	svc := NewEventService(mem)

	byVenue, err := svc.List(context.Background(), "Grand")
	assert.NoError(t, err)
	assert.Len(t, byVenue, 1)

	byName, err := svc.List(context.Background(), "Gal")
	assert.NoError(t, err)
	assert.Len(t, byName, 1)

	none, err := svc.List(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
