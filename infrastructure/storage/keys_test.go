package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/infrastructure/configuration"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	key := objectKey("/tmp/upload-123/Clip.MP4", now)

	assert.Regexp(t, regexp.MustCompile(`^uploads/2026/03/[0-9a-f-]{36}\.mp4$`), key)
	assert.NotEqual(t, key, objectKey("/tmp/upload-123/Clip.MP4", now))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("thumb.png"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}

func TestURLBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder urlBuilder
		want    string
	}{
		{"public base", newURLBuilder("https://cdn.example.com/", "", "media", "us-east-1", false), "https://cdn.example.com/uploads/2026/01/a.mp4"},
		{"endpoint path style", newURLBuilder("", "localhost:9000", "media", "us-east-1", false), "http://localhost:9000/media/uploads/2026/01/a.mp4"},
		{"endpoint tls", newURLBuilder("", "minio.internal", "media", "us-east-1", true), "https://minio.internal/media/uploads/2026/01/a.mp4"},
		{"aws", newURLBuilder("", "", "media", "eu-west-1", true), "https://media.s3.eu-west-1.amazonaws.com/uploads/2026/01/a.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.builder.URL("uploads/2026/01/a.mp4")
			assert.Equal(t, tt.want, got)

			key, err := tt.builder.Key(got)
			require.NoError(t, err)
			assert.Equal(t, "uploads/2026/01/a.mp4", key)
		})
	}
}

func TestURLBuilder_KeyFromForeignHost(t *testing.T) {
	b := newURLBuilder("https://cdn.example.com", "", "media", "us-east-1", true)

	key, err := b.Key("https://old-cdn.example.com/uploads/2025/12/b.png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/2025/12/b.png", key)

	_, err = b.Key("https://elsewhere.example.com/avatar.png")
	assert.Error(t, err)
}

func TestNewAssetStore_UnknownDriver(t *testing.T) {
	_, err := NewAssetStore(context.Background(), configuration.Storage{Driver: "ftp"})
	assert.ErrorContains(t, err, "unknown storage driver")
}
