package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuning_OverlaysOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	content := `
cost_percent = 8.0

[thresholds]
crop_threshold = 0.4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tun, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, tun.CostPercent)
	assert.Equal(t, 0.4, tun.Thresholds.Crop)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 0.3, tun.Thresholds.Stretch)
	assert.Equal(t, 0.5, tun.Thresholds.Pad)
	assert.Equal(t, 22.0, tun.ClipPercentMono)
	assert.Equal(t, 50, tun.DefaultDither)
}

func TestLoadTuning_MissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
