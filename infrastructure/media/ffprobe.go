// Package media inspects uploaded media files.
package media

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"vidtube/domain/repository"
)

// FFProbe reads durations by shelling out to the ffprobe binary.
type FFProbe struct {
	binary  string
	timeout time.Duration
}

func NewFFProbe(binary string) repository.IDurationProbe {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary, timeout: 30 * time.Second}
}

func (p *FFProbe) Duration(ctx context.Context, localPath string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		localPath,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", localPath, err, strings.TrimSpace(stderr.String()))
	}
	return parseDuration(stdout.String())
}

// parseDuration rounds a fractional seconds value up, so a 600.2s clip
// counts as 601 seconds.
func parseDuration(out string) (int, error) {
	raw := strings.TrimSpace(out)
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unreadable duration %q: %w", raw, err)
	}
	if secs <= 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return int(math.Ceil(secs)), nil
}
