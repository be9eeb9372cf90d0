package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"vidtube/infrastructure/configuration"
)

// MinioStore hosts assets on MinIO. The bucket is created when missing.
type MinioStore struct {
	client *minio.Client
	bucket string
	urls   urlBuilder
}

func NewMinioStore(ctx context.Context, cfg configuration.Storage) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		urls:   newURLBuilder(cfg.PublicBaseURL, cfg.Endpoint, cfg.Bucket, cfg.Region, cfg.UseSSL),
	}, nil
}

func (m *MinioStore) Upload(ctx context.Context, localPath string) (string, error) {
	key := objectKey(localPath, time.Now())
	_, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.urls.URL(key), nil
}

func (m *MinioStore) Delete(ctx context.Context, url string) error {
	key, err := m.urls.Key(url)
	if err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
