package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/helpers"
	"venuebook/internal/services"
)

type VenueHandler struct {
	venues *services.VenueService
}

func NewVenueHandler(venues *services.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

func (h *VenueHandler) List(c *gin.Context) {
	search := c.Query("search")
	venues, err := h.venues.List(c.Request.Context(), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"venues": venues,
		"search": search,
	})
}

func (h *VenueHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	venue, err := h.venues.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// venueInputFromForm parses the multipart form fields shared by create and
// update. Capacity is optional; an unparsable value is reported on its field.
func venueInputFromForm(c *gin.Context) (services.VenueInput, bool) {
	in := services.VenueInput{
		VenueName: c.PostForm("venue_name"),
		Location:  c.PostForm("location"),
	}
	if idStr := c.PostForm("venue_id"); idStr != "" {
		id, err := helpers.StringToUint(idStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "venue_id", Message: "Venue id must be a number."}})
			return in, false
		}
		in.ID = id
	}
	if capacityStr := c.PostForm("capacity"); capacityStr != "" {
		capacity, err := helpers.StringToInt(capacityStr)
		if err != nil {
			helpers.RespondWithFieldErrors(c, http.StatusBadRequest, "Validation failed.",
				services.ValidationErrors{{Field: "capacity", Message: "Capacity must be a number."}})
			return in, false
		}
		in.Capacity = &capacity
	}
	return in, true
}

func (h *VenueHandler) Create(c *gin.Context) {
	in, ok := venueInputFromForm(c)
	if !ok {
		return
	}

	imageFile, err := c.FormFile("image_file")
	if err != nil {
		imageFile = nil
	}

	venue, err := h.venues.Create(c.Request.Context(), in, imageFile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Venue created successfully.",
		"venue_id": venue.ID,
	})
}

func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := venueInputFromForm(c)
	if !ok {
		return
	}

	imageFile, err := c.FormFile("image_file")
	if err != nil {
		imageFile = nil
	}

	venue, err := h.venues.Update(c.Request.Context(), id, in, imageFile)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) && conflict.Reason == services.ReasonConcurrentModification {
			// Echo the submitted values so the caller can redisplay them.
			c.JSON(http.StatusConflict, gin.H{
				"error":   http.StatusText(http.StatusConflict),
				"message": conflict.Message,
				"venue":   venue,
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Venue updated successfully.",
		"venue":   venue,
	})
}

func (h *VenueHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.venues.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Venue deleted successfully.",
	})
}
