package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venuebook/internal/models"
	"venuebook/internal/store"
)

type EventService struct {
	store EntityStore
}

func NewEventService(entityStore EntityStore) *EventService {
	return &EventService{store: entityStore}
}

type EventInput struct {
	ID          uint
	EventName   string
	EventDate   time.Time
	Description string
	VenueID     uint
}

// validateEvent checks field limits and that the referenced venue actually
// exists, not just that the id is non-zero.
func (s *EventService) validateEvent(ctx context.Context, in EventInput) (ValidationErrors, error) {
	var errs ValidationErrors
	if strings.TrimSpace(in.EventName) == "" {
		errs.add("event_name", "Event name field is required.")
	} else if len(in.EventName) > maxNameLen {
		errs.add("event_name", fmt.Sprintf("Event name cannot exceed %d characters.", maxNameLen))
	}

	if in.EventDate.IsZero() {
		errs.add("event_date", "Event date field is required.")
	} else if beforeToday(in.EventDate) {
		errs.add("event_date", "Event date cannot be in the past.")
	}

	if in.VenueID == 0 {
		errs.add("venue_id", "Please select a venue.")
	} else {
		exists, err := s.store.VenueExists(ctx, in.VenueID)
		if err != nil {
			return nil, &StoreError{Op: "venue.exists", Err: err}
		}
		if !exists {
			errs.add("venue_id", "Selected venue does not exist.")
		}
	}

	if len(in.Description) > maxDescriptionLen {
		errs.add("description", fmt.Sprintf("Description cannot exceed %d characters.", maxDescriptionLen))
	}
	return errs, nil
}

func (s *EventService) List(ctx context.Context, search string) ([]models.Event, error) {
	events, err := s.store.ListEvents(ctx, search)
	if err != nil {
		return nil, &StoreError{Op: "event.list", Err: err}
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindEvent, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "event.get", Err: err}
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	errs, err := s.validateEvent(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	event := &models.Event{
		EventName:   in.EventName,
		EventDate:   in.EventDate,
		Description: in.Description,
		VenueID:     in.VenueID,
	}
	if err := s.store.InsertEvent(ctx, event); err != nil {
		return nil, &StoreError{Op: "event.insert", Err: err}
	}
	return event, nil
}

// Update edits an event under optimistic concurrency. A stale write is
// disambiguated by existence: gone means not-found, still there means the
// conflict is reported with the submitted values attached so the user's
// edits survive.
func (s *EventService) Update(ctx context.Context, id uint, in EventInput) (*models.Event, error) {
	if in.ID != id {
		return nil, &NotFoundError{Kind: KindEvent, ID: id}
	}

	existing, err := s.store.GetEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindEvent, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "event.get", Err: err}
	}

	errs, err := s.validateEvent(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}

	event := &models.Event{
		ID:          id,
		EventName:   in.EventName,
		EventDate:   in.EventDate,
		Description: in.Description,
		VenueID:     in.VenueID,
		Version:     existing.Version,
	}
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, store.ErrVersionMismatch) {
			exists, eerr := s.store.EventExists(ctx, id)
			if eerr != nil {
				return nil, &StoreError{Op: "event.exists", Err: eerr}
			}
			if !exists {
				return nil, &NotFoundError{Kind: KindEvent, ID: id}
			}
			return event, &ConflictError{
				Kind:    KindEvent,
				ID:      id,
				Reason:  ReasonConcurrentModification,
				Message: "The event was modified by another user. Please refresh and try again.",
			}
		}
		return nil, &StoreError{Op: "event.update", Err: err}
	}
	return event, nil
}

// Delete removes an event unless bookings still reference it.
func (s *EventService) Delete(ctx context.Context, id uint) error {
	hasBookings, err := s.store.EventHasBookings(ctx, id)
	if err != nil {
		return &StoreError{Op: "event.dependents", Err: err}
	}
	if hasBookings {
		return &DependentsError{Kind: KindEvent, ID: id}
	}

	if err := s.store.DeleteEvent(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrReferenced):
			return &DependentsError{Kind: KindEvent, ID: id}
		case errors.Is(err, store.ErrNotFound):
			return &NotFoundError{Kind: KindEvent, ID: id}
		default:
			return &StoreError{Op: "event.delete", Err: err}
		}
	}
	return nil
}
