package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"venuebook/internal/assets"
	"venuebook/internal/store"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func postMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, fileName string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image_file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateVenueEndpoint(t *testing.T) {
	mem := store.NewMemory()
	r := newTestRouter(mem, assets.NewMemoryStore())

	w := postForm(r, "/v1/venues", url.Values{
		"venue_name": {"Grand Hall"},
		"location":   {"Cape Town"},
		"capacity":   {"500"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Venue created successfully.", body["message"])
	assert.NotZero(t, body["venue_id"])
}

func TestCreateVenueWithImageEndpoint(t *testing.T) {
	mem := store.NewMemory()
	objects := assets.NewMemoryStore()
	r := newTestRouter(mem, objects)

	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 256)...)
	w := postMultipart(t, r, "/v1/venues", map[string]string{
		"venue_name": "Grand Hall",
	}, "hall.png", png)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, objects.Len())

	list := decodeBody(t, doRequest(r, http.MethodGet, "/v1/venues"))
	venue := list["venues"].([]any)[0].(map[string]any)
	assert.NotEmpty(t, venue["image_url"])
}

func TestCreateVenueRejectsNonImageUpload(t *testing.T) {
	mem := store.NewMemory()
	objects := assets.NewMemoryStore()
	r := newTestRouter(mem, objects)

	w := postMultipart(t, r, "/v1/venues", map[string]string{
		"venue_name": "Grand Hall",
	}, "notes.txt", []byte("definitely not an image"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	field := body["fields"].([]any)[0].(map[string]any)
	assert.Equal(t, "image_file", field["field"])
	assert.Zero(t, objects.Len())
}

func TestCreateVenueValidationEndpoint(t *testing.T) {
	mem := store.NewMemory()
	r := newTestRouter(mem, assets.NewMemoryStore())

	// Missing name is a domain rejection.
	w := postForm(r, "/v1/venues", url.Values{"location": {"Cape Town"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	field := decodeBody(t, w)["fields"].([]any)[0].(map[string]any)
	assert.Equal(t, "venue_name", field["field"])

	// An unparsable capacity never reaches the domain layer.
	w = postForm(r, "/v1/venues", url.Values{
		"venue_name": {"Grand Hall"},
		"capacity":   {"lots"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	field = decodeBody(t, w)["fields"].([]any)[0].(map[string]any)
	assert.Equal(t, "capacity", field["field"])
}

func TestDeleteVenueBlockedEndpoint(t *testing.T) {
	mem := store.NewMemory()
	venue, _ := seedVenueEvent(t, mem)
	r := newTestRouter(mem, assets.NewMemoryStore())

	w := doRequest(r, http.MethodDelete, "/v1/venues/"+itoa(venue.ID))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "Cannot delete this venue")

	// Still retrievable afterwards.
	w = doRequest(r, http.MethodGet, "/v1/venues/"+itoa(venue.ID))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVenueNotFoundEndpoint(t *testing.T) {
	r := newTestRouter(store.NewMemory(), assets.NewMemoryStore())

	w := doRequest(r, http.MethodGet, "/v1/venues/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Venue not found.", decodeBody(t, w)["message"])
}

func TestUpdateVenueEndpoint(t *testing.T) {
	mem := store.NewMemory()
	r := newTestRouter(mem, assets.NewMemoryStore())

	created := decodeBody(t, postForm(r, "/v1/venues", url.Values{
		"venue_name": {"Grand Hall"},
	}))
	id := itoa(uint(created["venue_id"].(float64)))

	w := putForm(r, "/v1/venues/"+id, url.Values{
		"venue_id":   {id},
		"venue_name": {"Grander Hall"},
		"capacity":   {"750"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	venue := body["venue"].(map[string]any)
	assert.Equal(t, "Grander Hall", venue["venue_name"])
	assert.Equal(t, float64(750), venue["capacity"])
}
