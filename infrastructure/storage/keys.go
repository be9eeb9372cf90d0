package storage

import (
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const keyPrefix = "uploads"

// objectKey names an upload uniquely while keeping the original extension.
func objectKey(localPath string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return fmt.Sprintf("%s/%s/%s%s", keyPrefix, now.UTC().Format("2006/01"), uuid.NewString(), ext)
}

func contentType(localPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// urlBuilder maps object keys to public URLs and back.
type urlBuilder struct {
	base string
}

// newURLBuilder prefers an explicit public base URL. Otherwise objects are
// addressed path-style under endpoint, or virtual-host style on AWS.
func newURLBuilder(publicBase, endpoint, bucket, region string, useSSL bool) urlBuilder {
	if publicBase = strings.TrimSuffix(strings.TrimSpace(publicBase), "/"); publicBase != "" {
		return urlBuilder{base: publicBase}
	}
	if endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/"); endpoint != "" {
		if !strings.Contains(endpoint, "://") {
			scheme := "http"
			if useSSL {
				scheme = "https"
			}
			endpoint = scheme + "://" + endpoint
		}
		return urlBuilder{base: endpoint + "/" + bucket}
	}
	return urlBuilder{base: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)}
}

func (b urlBuilder) URL(key string) string {
	return b.base + "/" + key
}

// Key recovers the object key from a URL previously produced by URL.
func (b urlBuilder) Key(raw string) (string, error) {
	if rest, ok := strings.CutPrefix(raw, b.base+"/"); ok && rest != "" {
		return rest, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse asset url: %w", err)
	}
	p := strings.TrimPrefix(path.Clean(u.Path), "/")
	if i := strings.Index(p, keyPrefix+"/"); i >= 0 {
		return p[i:], nil
	}
	return "", fmt.Errorf("asset url %q is not managed by this store", raw)
}
