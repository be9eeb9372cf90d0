// Package storage implements the asset collaborator on S3 or MinIO.
package storage

import (
	"context"
	"fmt"

	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
)

const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// NewAssetStore selects the backend named by cfg.Driver.
func NewAssetStore(ctx context.Context, cfg configuration.Storage) (repository.IAssetStore, error) {
	switch cfg.Driver {
	case DriverS3, "":
		return NewS3Store(ctx, cfg)
	case DriverMinio:
		return NewMinioStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
