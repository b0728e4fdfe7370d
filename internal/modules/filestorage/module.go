package filestorage

import (
	"context"
	"fmt"

	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/domain"
	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/infrastructure/local"
	"github.com/mwesigwa/tunestream-backend/internal/modules/filestorage/infrastructure/s3"
	"github.com/mwesigwa/tunestream-backend/internal/shared/infrastructure/config"
)

// Module represents the file storage module
type Module struct {
	service *application.FileService
	storage domain.FileStorage
}

// NewModule creates the file storage module, selecting the S3 or local
// backend from configuration.
func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	var storage domain.FileStorage
	var err error

	if cfg.UseS3 {
		storage, err = s3.NewS3Storage(ctx, s3.Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
	} else {
		storage, err = local.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	return &Module{
		service: application.NewFileService(storage),
		storage: storage,
	}, nil
}

// Service returns the file service
func (m *Module) Service() *application.FileService {
	return m.service
}
