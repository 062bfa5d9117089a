// Package handlers exposes the venue/event/booking core over HTTP. Handlers
// only parse requests, call the services and translate the structured
// outcomes onto status codes; every rule lives below them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/helpers"
	"venuebook/internal/middleware"
	"venuebook/internal/services"
)

func notFoundMessage(kind string) string {
	switch kind {
	case services.KindVenue:
		return "Venue not found."
	case services.KindEvent:
		return "Event not found."
	case services.KindBooking:
		return "Booking not found."
	}
	return "Not found."
}

func dependentsMessage(kind string) string {
	switch kind {
	case services.KindVenue:
		return "Cannot delete this venue. It may have associated events or bookings. Please delete all related events and bookings first."
	case services.KindEvent:
		return "Cannot delete this event. It may have associated bookings. Please delete all related bookings first."
	}
	return "Cannot delete: other records still reference it."
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Double-booking stays field-tagged like a validation rejection; concurrent
// modification and blocked deletes are conflicts; asset upload failures are
// upstream errors.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErrs services.ValidationErrors
		notFound       *services.NotFoundError
		conflict       *services.ConflictError
		dependents     *services.DependentsError
		assetErr       *services.AssetError
	)
	switch {
	case errors.As(err, &validationErrs):
		helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.", validationErrs)
	case errors.As(err, &conflict):
		if conflict.Reason == services.ReasonDoubleBooked {
			middleware.CountBookingConflict()
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, conflict.Message,
				services.ValidationErrors{{Field: conflict.Field, Message: conflict.Message}})
			return
		}
		helpers.RespondWithError(c, http.StatusConflict, conflict.Message)
	case errors.As(err, &notFound):
		helpers.RespondWithError(c, http.StatusNotFound, notFoundMessage(notFound.Kind))
	case errors.As(err, &dependents):
		helpers.RespondWithError(c, http.StatusConflict, dependentsMessage(dependents.Kind))
	case errors.As(err, &assetErr):
		helpers.RespondWithError(c, http.StatusBadGateway, "Error uploading image. Please try again.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Unexpected server error.")
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := helpers.StringToUint(c.Param("id"))
	if err != nil || id == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}
