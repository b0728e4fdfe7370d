package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds configuration for S3/MinIO storage
type Config struct {
	BucketName     string
	Region         string
	Endpoint       string // Internal endpoint (e.g., minio:9000)
	PublicEndpoint string // Public endpoint (e.g., localhost:9000)
	AccessKey      string
	SecretKey      string
	UseSSL         bool
}

// S3Storage implements the FileStorage interface using AWS S3 or MinIO
type S3Storage struct {
	client        *s3.Client
	presignClient *s3.Client
	config        Config
}

// NewS3Storage creates a new S3 storage implementation
func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO / LocalStack style deployment with static credentials
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true // Required for MinIO
		}
	})

	// Presigned URLs must be reachable by browsers, so presigning uses the
	// public endpoint when one is configured.
	presignClient := client
	if cfg.Endpoint != "" && cfg.PublicEndpoint != "" {
		presignClient = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(withScheme(cfg.PublicEndpoint, cfg.UseSSL))
			o.UsePathStyle = true
		})
	}

	return &S3Storage{
		client:        client,
		presignClient: presignClient,
		config:        cfg,
	}, nil
}

// UploadFile uploads a blob to S3 and returns the public URL
func (s *S3Storage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	if s.config.PublicEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.config.PublicEndpoint, s.config.UseSSL), s.config.BucketName, key), nil
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.config.Endpoint, s.config.UseSSL), s.config.BucketName, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.BucketName, s.config.Region, key), nil
}

// DeleteFile deletes a blob from S3
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	})
	return err
}

// GetPresignedURL generates a presigned URL for streaming a blob
func (s *S3Storage) GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.presignClient)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// GetPresignedDownloadURL generates a presigned URL that forces a download
func (s *S3Storage) GetPresignedDownloadURL(ctx context.Context, key string, filename string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.presignClient)

	if filename == "" || filename == "." {
		filename = "download"
	}
	contentDisposition := fmt.Sprintf("attachment; filename=%q", filename)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.config.BucketName),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(contentDisposition),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return request.URL, nil
}

// GetKeyFromURL extracts the storage key from a public URL
func (s *S3Storage) GetKeyFromURL(fileURL string) (string, error) {
	checkPrefix := func(endpoint string) (string, bool) {
		if endpoint == "" {
			return "", false
		}
		prefix := fmt.Sprintf("%s/%s/", withScheme(endpoint, s.config.UseSSL), s.config.BucketName)
		if strings.HasPrefix(fileURL, prefix) {
			return strings.TrimPrefix(fileURL, prefix), true
		}
		return "", false
	}

	if key, ok := checkPrefix(s.config.PublicEndpoint); ok {
		return key, nil
	}
	if key, ok := checkPrefix(s.config.Endpoint); ok {
		return key, nil
	}

	if s.config.Endpoint == "" {
		prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.BucketName, s.config.Region)
		if strings.HasPrefix(fileURL, prefix) {
			return strings.TrimPrefix(fileURL, prefix), nil
		}
	}

	return "", fmt.Errorf("url does not match expected format: %s", fileURL)
}

// withScheme prefixes an endpoint with http(s):// if it has no scheme
func withScheme(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
