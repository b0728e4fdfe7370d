package domain

import (
	"context"
	"io"
	"time"
)

// BlobRef describes a stored object as the catalog records it: an opaque
// reference plus the declared format and size. File bytes are never
// inspected by the core.
type BlobRef struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// FileStorage is the blob-storage capability. Implementations exist for
// S3/MinIO and the local filesystem.
type FileStorage interface {
	// UploadFile stores a blob under key and returns its public URL
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)

	// DeleteFile removes a blob by its key
	DeleteFile(ctx context.Context, key string) error

	// GetPresignedURL returns a temporary URL for streaming a blob
	GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)

	// GetPresignedDownloadURL returns a temporary URL that forces a download
	GetPresignedDownloadURL(ctx context.Context, key string, filename string, expiration time.Duration) (string, error)

	// GetKeyFromURL extracts the storage key from a public URL
	GetKeyFromURL(url string) (string, error)
}
