package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements the FileStorage interface on the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a local filesystem storage rooted at basePath
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

// UploadFile writes the blob under basePath and returns its public URL
func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath := filepath.Join(l.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%s", l.baseURL, key), nil
}

// DeleteFile removes the blob from disk
func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.basePath, key))
}

// GetPresignedURL for local storage is just the public URL
func (l *LocalStorage) GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s", l.baseURL, key), nil
}

// GetPresignedDownloadURL for local storage is just the public URL
func (l *LocalStorage) GetPresignedDownloadURL(ctx context.Context, key string, filename string, expiration time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s", l.baseURL, key), nil
}

// GetKeyFromURL extracts the key from a public URL
func (l *LocalStorage) GetKeyFromURL(url string) (string, error) {
	prefix := l.baseURL + "/"
	if strings.HasPrefix(url, prefix) && len(url) > len(prefix) {
		return strings.TrimPrefix(url, prefix), nil
	}
	return "", fmt.Errorf("url does not match expected format: %s", url)
}
