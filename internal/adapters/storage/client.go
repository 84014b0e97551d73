// Package storage provides the MinIO-backed crop image archive. Uploaded
// disease-detection photos are retained so agronomists can review the
// model's verdicts later.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"agriportal_backend/platform/config"
)

// Archive stores crop images in a MinIO bucket.
type Archive struct {
	client *minio.Client
	bucket string
}

// NewArchive creates the crop image archive and ensures its bucket exists.
func NewArchive(ctx context.Context, cfg config.MinIOConfig) (*Archive, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	a := &Archive{client: client, bucket: cfg.GetMinioBucketCropImages()}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Store uploads an image and returns its object key. Keys are prefixed by
// upload date so the bucket stays browsable.
func (a *Archive) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(path.Base(fileName), ext)
	key := fmt.Sprintf("%s/%s_%s%s", time.Now().UTC().Format("2006-01-02"), base, uuid.New().String()[:8], ext)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}
	return key, nil
}

// PresignedDownloadURL creates a 15-minute download link for an archived image.
func (a *Archive) PresignedDownloadURL(ctx context.Context, key string) (string, error) {
	u, err := a.client.PresignedGetObject(ctx, a.bucket, key, 15*time.Minute, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return u.String(), nil
}
