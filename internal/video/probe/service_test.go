package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"negative", -4, "0:00"},
		{"under a minute", 42.7, "0:42"},
		{"minutes", 83, "1:23"},
		{"just under an hour", 3599, "59:59"},
		{"exactly an hour", 3600, "1:00:00"},
		{"hours", 3723.2, "1:02:03"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.seconds))
		})
	}
}

func TestParseDuration(t *testing.T) {
	output := []byte(`{"format": {"filename": "clip.mp4", "duration": "125.480000", "size": "1048576"}}`)
	seconds, err := parseDuration(output)
	require.NoError(t, err)
	assert.InDelta(t, 125.48, seconds, 0.001)
}

func TestParseDuration_MissingDuration(t *testing.T) {
	_, err := parseDuration([]byte(`{"format": {"filename": "clip.mp4"}}`))
	assert.Error(t, err)
}

func TestParseDuration_MalformedOutput(t *testing.T) {
	_, err := parseDuration([]byte("not json at all"))
	assert.Error(t, err)
}

func TestParseDuration_NonNumeric(t *testing.T) {
	_, err := parseDuration([]byte(`{"format": {"duration": "N/A"}}`))
	assert.Error(t, err)
}

func TestDuration_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(file, []byte("not a real video"), 0644))

	svc := NewService(&Config{
		Path:    filepath.Join(dir, "no-such-ffprobe"),
		Timeout: 2 * time.Second,
	}, logger.NewNopLogger())

	_, err := svc.Duration(context.Background(), file)
	assert.Error(t, err)
}

func TestDuration_MissingFile(t *testing.T) {
	svc := NewService(&Config{Path: "ffprobe", Timeout: time.Second}, logger.NewNopLogger())
	_, err := svc.Duration(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
