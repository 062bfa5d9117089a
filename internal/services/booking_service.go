package services

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/models"
	"venuebook/internal/store"
)

// BookingService coordinates booking mutations: field validation, the
// double-booking fast path, the insert/update with its unique-index backstop,
// and unconditional deletes (nothing references a booking).
type BookingService struct {
	store     EntityStore
	conflicts *ConflictChecker
}

func NewBookingService(entityStore EntityStore) *BookingService {
	return &BookingService{
		store:     entityStore,
		conflicts: NewConflictChecker(entityStore),
	}
}

type BookingInput struct {
	ID          uint
	EventID     uint
	VenueID     uint
	BookingDate time.Time
}

func validateBooking(in BookingInput) ValidationErrors {
	var errs ValidationErrors
	if in.EventID == 0 {
		errs.add("event_id", "Please select an event.")
	}
	if in.VenueID == 0 {
		errs.add("venue_id", "Please select a venue.")
	}
	if in.BookingDate.IsZero() {
		errs.add("booking_date", "Booking date is required.")
	} else if beforeToday(in.BookingDate) {
		errs.add("booking_date", "Booking date cannot be in the past.")
	}
	return errs
}

func doubleBookedConflict(id uint) *ConflictError {
	return &ConflictError{
		Kind:    KindBooking,
		ID:      id,
		Reason:  ReasonDoubleBooked,
		Field:   "venue_id",
		Message: "This venue is already booked for the selected date.",
	}
}

func (s *BookingService) ListSummaries(ctx context.Context, search string) ([]models.BookingSummary, error) {
	summaries, err := s.store.ListBookingSummaries(ctx, search)
	if err != nil {
		return nil, &StoreError{Op: "booking.list", Err: err}
	}
	return summaries, nil
}

func (s *BookingService) GetSummary(ctx context.Context, id uint) (*models.BookingSummary, error) {
	summary, err := s.store.GetBookingSummary(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindBooking, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "booking.get", Err: err}
	}
	return summary, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindBooking, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "booking.get", Err: err}
	}
	return booking, nil
}

// Create validates, runs the conflict check, then inserts. The check and the
// insert are not one atomic step, so a lost race surfaces from the unique
// index and is reported exactly like the fast-path rejection.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if errs := validateBooking(in); len(errs) > 0 {
		return nil, errs
	}

	booked, err := s.conflicts.IsDoubleBooked(ctx, in.VenueID, in.BookingDate, 0)
	if err != nil {
		return nil, &StoreError{Op: "booking.conflict", Err: err}
	}
	if booked {
		return nil, doubleBookedConflict(0)
	}

	booking := &models.Booking{
		EventID:     in.EventID,
		VenueID:     in.VenueID,
		BookingDate: in.BookingDate,
	}
	if err := s.store.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, store.ErrDuplicateBooking) {
			return nil, doubleBookedConflict(0)
		}
		return nil, &StoreError{Op: "booking.insert", Err: err}
	}
	return booking, nil
}

// Update re-runs the conflict check excluding the booking being edited, so a
// booking can be re-saved with its own unchanged date. A stale write checks
// existence first: deleted concurrently means not-found, otherwise the
// conflict is surfaced for the caller to retry.
func (s *BookingService) Update(ctx context.Context, id uint, in BookingInput) (*models.Booking, error) {
	if in.ID != id {
		return nil, &NotFoundError{Kind: KindBooking, ID: id}
	}

	existing, err := s.store.GetBooking(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindBooking, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "booking.get", Err: err}
	}

	booked, err := s.conflicts.IsDoubleBooked(ctx, in.VenueID, in.BookingDate, id)
	if err != nil {
		return nil, &StoreError{Op: "booking.conflict", Err: err}
	}
	if booked {
		return nil, doubleBookedConflict(id)
	}

	booking := &models.Booking{
		ID:          id,
		EventID:     in.EventID,
		VenueID:     in.VenueID,
		BookingDate: in.BookingDate,
		Version:     existing.Version,
	}
	if err := s.store.UpdateBooking(ctx, booking); err != nil {
		switch {
		case errors.Is(err, store.ErrVersionMismatch):
			exists, eerr := s.store.BookingExists(ctx, id)
			if eerr != nil {
				return nil, &StoreError{Op: "booking.exists", Err: eerr}
			}
			if !exists {
				return nil, &NotFoundError{Kind: KindBooking, ID: id}
			}
			return booking, &ConflictError{
				Kind:    KindBooking,
				ID:      id,
				Reason:  ReasonConcurrentModification,
				Message: "The booking was modified by another user. Please refresh and try again.",
			}
		case errors.Is(err, store.ErrDuplicateBooking):
			return nil, doubleBookedConflict(id)
		default:
			return nil, &StoreError{Op: "booking.update", Err: err}
		}
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Kind: KindBooking, ID: id}
		}
		return &StoreError{Op: "booking.delete", Err: err}
	}
	return nil
}
