package application

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/domain"
)

// FileService provides high-level blob operations for the upload folders
// used by the catalog (audio, video, thumbnails, verification documents).
type FileService struct {
	storage domain.FileStorage
}

// NewFileService creates a new file service
func NewFileService(storage domain.FileStorage) *FileService {
	return &FileService{storage: storage}
}

// Upload stores a multipart file under a generated key inside folder and
// returns the public URL and the key.
func (s *FileService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, string, error) {
	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	url, err := s.UploadWithKey(ctx, file, key, header.Header.Get("Content-Type"))
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// UploadWithKey stores a blob under a caller-chosen key
func (s *FileService) UploadWithKey(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	return s.storage.UploadFile(ctx, key, file, contentType)
}

// StreamURL returns a short-lived URL for playing a stored blob
func (s *FileService) StreamURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.storage.GetPresignedURL(ctx, key, expiration)
}

// DownloadURL returns a short-lived URL that forces a download
func (s *FileService) DownloadURL(ctx context.Context, key string, filename string, expiration time.Duration) (string, error) {
	return s.storage.GetPresignedDownloadURL(ctx, key, filename, expiration)
}

// Delete removes a stored blob
func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.storage.DeleteFile(ctx, key)
}

// KeyFromURL extracts the storage key from a public URL
func (s *FileService) KeyFromURL(fileURL string) (string, error) {
	return s.storage.GetKeyFromURL(fileURL)
}
