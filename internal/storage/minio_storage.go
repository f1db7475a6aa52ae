package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"evrental-backend/internal/logger"
)

// MinIOStorageService stores inspection photos in an S3-compatible
// object store.
type MinIOStorageService struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorageService connects to MinIO and ensures the bucket exists.
func NewMinIOStorageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOStorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Bucket created", "bucket", bucket)
	}

	return &MinIOStorageService{client: client, bucket: bucket}, nil
}

func (m *MinIOStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	u, err := m.client.PresignedPutObject(ctx, m.bucket, key, expiresIn)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return u.String(), nil
}

func (m *MinIOStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiresIn, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return u.String(), nil
}

func (m *MinIOStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size, nil
}

func (m *MinIOStorageService) DeleteFile(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// SaveFile uploads directly; only the mock HTTP handler path calls this,
// clients normally PUT to the presigned URL.
func (m *MinIOStorageService) SaveFile(key string, reader io.Reader) error {
	_, err := m.client.PutObject(context.Background(), m.bucket, key, reader, -1, minio.PutObjectOptions{})
	return err
}

func (m *MinIOStorageService) ReadFile(key string) (io.ReadCloser, error) {
	return m.client.GetObject(context.Background(), m.bucket, key, minio.GetObjectOptions{})
}
