package repository

import (
	"context"
	"time"

	"vidtube/domain/model"
)

// IAssetStore hosts binary assets. Upload returns the public URL of the
// stored object; Delete takes that same URL.
type IAssetStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) error
}

// IDurationProbe reads the duration of a media file in whole seconds.
type IDurationProbe interface {
	Duration(ctx context.Context, localPath string) (int, error)
}

type IEventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
	Close() error
}

// ITokenDenylist tracks revoked access token IDs until they expire.
type ITokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
