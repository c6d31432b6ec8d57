package storage

import (
	"context"
	"io"
)

// BlobStore is the contract the doctor directory uses for image blobs.
// Paths are storage-relative ("doctors/<key>"); URL renders a path as the
// absolute public address a client can fetch.
type BlobStore interface {
	Store(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
