package render

// TuningConfig centralizes the thresholds and magic numbers of the render
// pipeline. These are static defaults but live in one json/toml-taggable
// struct so deployments can override them from a config file.
type TuningConfig struct {
	// Geometry limits.
	Thresholds Thresholds `json:"thresholds" toml:"thresholds"`

	// Contrast stretch budgets. Clip percent differs by bit depth: 1-bit
	// output tolerates a harder clip than 4-level output.
	ClipPercentMono float64 `json:"clip_percent_mono" toml:"clip_percent_mono"` // Default: 22
	ClipPercentDuo  float64 `json:"clip_percent_duo" toml:"clip_percent_duo"`   // Default: 20
	CostPercent     float64 `json:"cost_percent" toml:"cost_percent"`           // Default: 6

	// Advisory value ranges. Outside these the defaults below apply.
	GammaMin   float64 `json:"gamma_min" toml:"gamma_min"`     // Default: 1.0
	GammaMax   float64 `json:"gamma_max" toml:"gamma_max"`     // Default: 2.4
	SharpenMax float64 `json:"sharpen_max" toml:"sharpen_max"` // Default: 2.0

	// Safe defaults substituted for out-of-range advisory fields.
	DefaultGamma   float64 `json:"default_gamma" toml:"default_gamma"`     // Default: 1.0
	DefaultSharpen float64 `json:"default_sharpen" toml:"default_sharpen"` // Default: 0.5
	DefaultDither  int     `json:"default_dither" toml:"default_dither"`   // Default: 50

	// Caption overlay.
	CaptionFontSize float64 `json:"caption_font_size" toml:"caption_font_size"` // Default: 16
	CaptionMaxLines int     `json:"caption_max_lines" toml:"caption_max_lines"` // Default: 2
}

// DefaultTuningConfig returns the standard pipeline tuning.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		Thresholds: Thresholds{
			Crop:    0.5,
			Stretch: 0.3,
			Pad:     0.5,
		},
		ClipPercentMono: 22,
		ClipPercentDuo:  20,
		CostPercent:     6,
		GammaMin:        1.0,
		GammaMax:        2.4,
		SharpenMax:      2.0,
		DefaultGamma:    1.0,
		DefaultSharpen:  0.5,
		DefaultDither:   50,
		CaptionFontSize: 16,
		CaptionMaxLines: 2,
	}
}

// GammaLadder is the coarse gamma scale exposed to manual device
// configuration; index 0 is identity.
var GammaLadder = []float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.2, 2.4}

// clipPercent returns the contrast clip budget for a bit depth.
func (t TuningConfig) clipPercent(bitDepth int) float64 {
	if bitDepth == 1 {
		return t.ClipPercentMono
	}
	return t.ClipPercentDuo
}
