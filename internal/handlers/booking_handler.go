package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/helpers"
	"venuebook/internal/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List serves the denormalized booking summaries, optionally filtered by a
// search token (numeric id exact match, or event/venue name substring).
func (h *BookingHandler) List(c *gin.Context) {
	search := c.Query("search")
	summaries, err := h.bookings.ListSummaries(c.Request.Context(), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": summaries,
		"search":   search,
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	summary, err := h.bookings.GetSummary(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func bookingInputFromForm(c *gin.Context) (services.BookingInput, bool) {
	var in services.BookingInput
	if idStr := c.PostForm("booking_id"); idStr != "" {
		id, err := helpers.StringToUint(idStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "booking_id", Message: "Booking id must be a number."}})
			return in, false
		}
		in.ID = id
	}
	if eventStr := c.PostForm("event_id"); eventStr != "" {
		eventID, err := helpers.StringToUint(eventStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "event_id", Message: "Event id must be a number."}})
			return in, false
		}
		in.EventID = eventID
	}
	if venueStr := c.PostForm("venue_id"); venueStr != "" {
		venueID, err := helpers.StringToUint(venueStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "venue_id", Message: "Venue id must be a number."}})
			return in, false
		}
		in.VenueID = venueID
	}
	if dateStr := c.PostForm("booking_date"); dateStr != "" {
		date, err := helpers.ParseDate(dateStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "booking_date", Message: "Invalid booking date format. Use yyyy-mm-dd."}})
			return in, false
		}
		in.BookingDate = date
	}
	return in, true
}

func (h *BookingHandler) Create(c *gin.Context) {
	in, ok := bookingInputFromForm(c)
	if !ok {
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking created successfully.",
		"booking_id": booking.ID,
	})
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bookingInputFromForm(c)
	if !ok {
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), id, in)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) && conflict.Reason == services.ReasonConcurrentModification {
			c.JSON(http.StatusConflict, gin.H{
				"error":   http.StatusText(http.StatusConflict),
				"message": conflict.Message,
				"booking": booking,
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully.",
		"booking": booking,
	})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Booking deleted successfully.",
	})
}
