package assets

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Calls to the external store get a bounded deadline so a slow object store
// cannot stall an entity mutation indefinitely.
const storeTimeout = 15 * time.Second

// Manager drives the asset lifecycle around entity mutations. Upload is the
// one path whose failure aborts the owning mutation; Remove is always
// best-effort.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Upload validates the candidate image and writes it to the store under a
// collision-resistant generated name, returning the durable URL to persist on
// the entity.
func (m *Manager) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	contentType, err := ValidateUpload(fileHeader)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return m.store.Put(ctx, key, src, contentType)
}

// Remove deletes the object behind url, best-effort. A failure is logged and
// must never block the entity mutation that triggered it.
func (m *Manager) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := m.store.Delete(ctx, url); err != nil {
		log.Printf("assets: failed to delete %s: %v", url, err)
	}
}
