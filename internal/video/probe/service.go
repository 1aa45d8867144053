package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Config represents duration probe configuration
type Config struct {
	Path    string        `mapstructure:"path" yaml:"path"`       // Path to the ffprobe binary
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // Hard limit for a probe run
}

// Service extracts media duration by shelling out to ffprobe.
type Service struct {
	config *Config
	logger logger.Logger
}

// NewService creates a new probe service
func NewService(config *Config, log logger.Logger) *Service {
	return &Service{config: config, logger: log}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the media duration of the file at path in seconds.
// The subprocess is bounded by the configured timeout; expiry is reported
// as an ordinary error so callers can fall back to a default duration.
func (s *Service) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("file does not exist: %s", path)
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.config.Path,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		s.logger.LogWarn("ffprobe failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return 0, fmt.Errorf("failed to probe media file: %w", err)
	}

	return parseDuration(output)
}

// parseDuration extracts the duration in seconds from ffprobe JSON output.
func parseDuration(output []byte) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return 0, fmt.Errorf("malformed probe output: %w", err)
	}
	if parsed.Format.Duration == "" {
		return 0, fmt.Errorf("probe output missing duration")
	}

	seconds, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", parsed.Format.Duration, err)
	}
	if math.IsNaN(seconds) || seconds < 0 {
		return 0, fmt.Errorf("invalid duration value: %f", seconds)
	}
	return seconds, nil
}

// FormatDuration renders seconds as M:SS under one hour, H:MM:SS otherwise.
// Invalid input yields the fallback "0:00".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "0:00"
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
