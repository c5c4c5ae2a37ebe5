// Package config holds service-level constants and loads optional tuning
// overrides for the render pipeline.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/inkframe/inkframe/pkg/render"
)

// LoadTuning reads a TOML tuning file and overlays it on the default
// pipeline tuning. Fields absent from the file keep their defaults.
func LoadTuning(path string) (render.TuningConfig, error) {
	tun := render.DefaultTuningConfig()
	if _, err := toml.DecodeFile(path, &tun); err != nil {
		return render.TuningConfig{}, fmt.Errorf("loading tuning file %s: %w", path, err)
	}
	return tun, nil
}
