package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface is the seam to the inspection-photo store.
// The mock backend keeps photos on the local filesystem for dev; the
// minio backend talks to an S3-compatible object store.
type StorageInterface interface {
	// GeneratePresignedUploadURL returns a URL the client PUTs the
	// photo bytes to. The transition guard only counts photos whose
	// upload was confirmed afterwards.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a time-limited read URL.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves a file. Only the mock backend's HTTP handler uses it.
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a file for reading. Only the mock backend's HTTP
	// handler uses it.
	ReadFile(key string) (io.ReadCloser, error)
}
