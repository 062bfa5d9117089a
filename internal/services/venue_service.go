package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"venuebook/internal/assets"
	"venuebook/internal/models"
	"venuebook/internal/store"
)

type VenueService struct {
	store  EntityStore
	assets *assets.Manager
}

func NewVenueService(entityStore EntityStore, assetManager *assets.Manager) *VenueService {
	return &VenueService{store: entityStore, assets: assetManager}
}

type VenueInput struct {
	ID        uint
	VenueName string
	Location  string
	Capacity  *int
}

func validateVenue(in VenueInput) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(in.VenueName) == "" {
		errs.add("venue_name", "Venue name field is required.")
	} else if len(in.VenueName) > maxNameLen {
		errs.add("venue_name", fmt.Sprintf("Venue name cannot exceed %d characters.", maxNameLen))
	}
	if len(in.Location) > maxLocationLen {
		errs.add("location", fmt.Sprintf("Location cannot exceed %d characters.", maxLocationLen))
	}
	if in.Capacity != nil && (*in.Capacity <= 0 || *in.Capacity > maxCapacity) {
		errs.add("capacity", fmt.Sprintf("Capacity must be between 1 and %d.", maxCapacity))
	}
	return errs
}

func (s *VenueService) List(ctx context.Context, search string) ([]models.Venue, error) {
	venues, err := s.store.ListVenues(ctx, search)
	if err != nil {
		return nil, &StoreError{Op: "venue.list", Err: err}
	}
	return venues, nil
}

func (s *VenueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.store.GetVenue(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindVenue, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "venue.get", Err: err}
	}
	return venue, nil
}

// Create validates the venue and the optional image before anything is
// written, uploads the image if present, then inserts the row carrying the
// asset URL. An upload failure aborts the create.
func (s *VenueService) Create(ctx context.Context, in VenueInput, image *multipart.FileHeader) (*models.Venue, error) {
	errs := validateVenue(in)
	if image != nil {
		if _, err := assets.ValidateUpload(image); err != nil {
			errs.add("image_file", err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	venue := &models.Venue{
		VenueName: in.VenueName,
		Location:  in.Location,
		Capacity:  in.Capacity,
	}
	if image != nil {
		url, err := s.assets.Upload(ctx, image)
		if err != nil {
			return nil, &AssetError{Op: "put", Err: err}
		}
		venue.ImageURL = url
	}

	if err := s.store.InsertVenue(ctx, venue); err != nil {
		return nil, &StoreError{Op: "venue.insert", Err: err}
	}
	return venue, nil
}

// Update edits a venue in place under optimistic concurrency. Without a new
// image the stored reference is re-attached verbatim; with one, the old
// asset is removed best-effort before the row carries the new URL.
func (s *VenueService) Update(ctx context.Context, id uint, in VenueInput, image *multipart.FileHeader) (*models.Venue, error) {
	if in.ID != id {
		return nil, &NotFoundError{Kind: KindVenue, ID: id}
	}

	existing, err := s.store.GetVenue(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindVenue, ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "venue.get", Err: err}
	}

	errs := validateVenue(in)
	if image != nil {
		if _, err := assets.ValidateUpload(image); err != nil {
			errs.add("image_file", err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	venue := &models.Venue{
		ID:        id,
		VenueName: in.VenueName,
		Location:  in.Location,
		Capacity:  in.Capacity,
		ImageURL:  existing.ImageURL,
		Version:   existing.Version,
	}
	if image != nil {
		url, err := s.assets.Upload(ctx, image)
		if err != nil {
			return nil, &AssetError{Op: "put", Err: err}
		}
		s.assets.Remove(ctx, existing.ImageURL)
		venue.ImageURL = url
	}

	if err := s.store.UpdateVenue(ctx, venue); err != nil {
		if errors.Is(err, store.ErrVersionMismatch) {
			return s.resolveVenueConflict(ctx, venue)
		}
		return nil, &StoreError{Op: "venue.update", Err: err}
	}
	return venue, nil
}

// resolveVenueConflict disambiguates a stale write: a concurrently deleted
// row reports not-found, otherwise the caller gets the submitted values back
// alongside the conflict so nothing the user typed is lost.
func (s *VenueService) resolveVenueConflict(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	exists, err := s.store.VenueExists(ctx, venue.ID)
	if err != nil {
		return nil, &StoreError{Op: "venue.exists", Err: err}
	}
	if !exists {
		return nil, &NotFoundError{Kind: KindVenue, ID: venue.ID}
	}
	return venue, &ConflictError{
		Kind:    KindVenue,
		ID:      venue.ID,
		Reason:  ReasonConcurrentModification,
		Message: "The venue was modified by another user. Please refresh and try again.",
	}
}

// Delete removes a venue unless events or bookings still reference it, then
// best-effort deletes its image. The dependent check runs first so the
// domain-level reason is known without parsing a storage error; the
// foreign-key translation below it is only a safety net.
func (s *VenueService) Delete(ctx context.Context, id uint) error {
	venue, err := s.store.GetVenue(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Kind: KindVenue, ID: id}
	}
	if err != nil {
		return &StoreError{Op: "venue.get", Err: err}
	}

	hasEvents, err := s.store.VenueHasEvents(ctx, id)
	if err != nil {
		return &StoreError{Op: "venue.dependents", Err: err}
	}
	hasBookings, err := s.store.VenueHasBookings(ctx, id)
	if err != nil {
		return &StoreError{Op: "venue.dependents", Err: err}
	}
	if hasEvents || hasBookings {
		return &DependentsError{Kind: KindVenue, ID: id}
	}

	if err := s.store.DeleteVenue(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrReferenced):
			return &DependentsError{Kind: KindVenue, ID: id}
		case errors.Is(err, store.ErrNotFound):
			return &NotFoundError{Kind: KindVenue, ID: id}
		default:
			return &StoreError{Op: "venue.delete", Err: err}
		}
	}

	s.assets.Remove(ctx, venue.ImageURL)
	return nil
}
