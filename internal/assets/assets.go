// Package assets manages venue images in an external object store:
// validation before any write, upload-then-link on create/update, and
// best-effort deletion of replaced or orphaned objects.
package assets

import (
	"context"
	"io"
)

// Store is the binary-object collaborator. Put returns a durable public URL
// for the stored object. Delete is idempotent: removing a missing object is
// not an error.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
