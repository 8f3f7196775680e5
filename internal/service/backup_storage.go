package service

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"ops-agent-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage copies finished backups off the host
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, filePath string) (string, error)
}

// MinioStorage uploads backups to an S3-compatible bucket
type MinioStorage struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinioStorage creates a client for the configured bucket. It returns nil
// without error when no endpoint is configured.
func NewMinioStorage(cfg config.DatabaseConfig) (*MinioStorage, error) {
	if cfg.BackupS3Endpoint == "" {
		return nil, nil
	}

	// minio expects a bare host
	endpoint := cfg.BackupS3Endpoint
	if u, err := url.Parse(endpoint); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		endpoint = u.Host
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BackupS3AccessKey, cfg.BackupS3SecretKey, ""),
		Secure: cfg.BackupS3UseSSL,
		Region: cfg.BackupS3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioStorage{client: client, bucket: cfg.BackupS3Bucket, region: cfg.BackupS3Region}, nil
}

// Upload stores the file and returns its s3:// location
func (s *MinioStorage) Upload(ctx context.Context, objectName, filePath string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	info, err := s.client.FPutObject(ctx, s.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentTypeFor(filePath),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("s3://%s/%s", info.Bucket, info.Key), nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	if err == nil {
		return nil
	}
	exists, existsErr := s.client.BucketExists(ctx, s.bucket)
	if existsErr == nil && exists {
		return nil
	}
	return fmt.Errorf("failed to prepare bucket %s: %w", s.bucket, err)
}

func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".sql") {
		return "application/sql"
	}
	return "application/octet-stream"
}
