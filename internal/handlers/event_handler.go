package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/helpers"
	"venuebook/internal/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) List(c *gin.Context) {
	search := c.Query("search")
	events, err := h.events.List(c.Request.Context(), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"search": search,
	})
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func eventInputFromForm(c *gin.Context) (services.EventInput, bool) {
	in := services.EventInput{
		EventName:   c.PostForm("event_name"),
		Description: c.PostForm("description"),
	}
	if idStr := c.PostForm("event_id"); idStr != "" {
		id, err := helpers.StringToUint(idStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "event_id", Message: "Event id must be a number."}})
			return in, false
		}
		in.ID = id
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
	if dateStr := c.PostForm("event_date"); dateStr != "" {
		date, err := helpers.ParseDate(dateStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "event_date", Message: "Invalid event date format. Use yyyy-mm-dd."}})
			return in, false
		}
		in.EventDate = date
	}
	return in, true
}

func (h *EventHandler) Create(c *gin.Context) {
	in, ok := eventInputFromForm(c)
	if !ok {
		return
	}

	event, err := h.events.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := eventInputFromForm(c)
	if !ok {
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, in)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) && conflict.Reason == services.ReasonConcurrentModification {
			// Echo the submitted values so the caller can redisplay them.
			c.JSON(http.StatusConflict, gin.H{
				"error":   http.StatusText(http.StatusConflict),
				"message": conflict.Message,
				"event":   event,
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
