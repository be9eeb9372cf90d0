package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		out     string
		want    int
		wantErr bool
	}{
		{"300.000000\n", 300, false},
		{"600.2\n", 601, false},
		{"12.5\nN/A\n", 13, false},
		{"N/A\n", 0, true},
		{"0\n", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.out)
		if tt.wantErr {
			assert.Error(t, err, tt.out)
			continue
		}
		require.NoError(t, err, tt.out)
		assert.Equal(t, tt.want, got)
	}
}

func TestFFProbe_MissingBinary(t *testing.T) {
	p := NewFFProbe("/nonexistent/ffprobe")
	_, err := p.Duration(context.Background(), "clip.mp4")
	assert.Error(t, err)
}
