// Package render turns arbitrary decoded photographs into low-bit-depth
// rasters for small grayscale e-paper panels. The pipeline is a pure,
// synchronous computation over one image: geometry resolution, gamma,
// cost-weighted contrast stretch, serpentine error diffusion, optional
// caption overlay. Fetching, classification, persistence and serving belong
// to the caller.
package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/inkframe/inkframe/pkg/raster"
)

// Renderer runs the full pipeline. It is immutable after construction and
// safe for concurrent use; every render call owns its buffers.
type Renderer struct {
	tuning    TuningConfig
	opts      StrategyOptions
	comp      composer
	font      *opentype.Font
	captioner *Captioner
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTuning replaces the default tuning configuration.
func WithTuning(t TuningConfig) Option {
	return func(r *Renderer) { r.tuning = t }
}

// WithStrategyOptions replaces the default strategy options. The default
// enables stretch fallback, matching the classifier-driven path.
func WithStrategyOptions(o StrategyOptions) Option {
	return func(r *Renderer) { r.opts = o }
}

// WithResampleFilter replaces the Lanczos default.
func WithResampleFilter(f imaging.ResampleFilter) Option {
	return func(r *Renderer) { r.comp.resampler = f }
}

// WithSmartCrop toggles content-aware crop window selection.
func WithSmartCrop(enabled bool) Option {
	return func(r *Renderer) { r.comp.smartCrop = enabled }
}

// WithFont replaces the bundled caption font.
func WithFont(fnt *opentype.Font) Option {
	return func(r *Renderer) { r.font = fnt }
}

// NewRenderer builds a Renderer. The caption font is parsed once here and
// shared by all render calls.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{
		tuning: DefaultTuningConfig(),
		opts:   StrategyOptions{FallbackOnStretchReject: true},
		comp:   composer{resampler: imaging.Lanczos, smartCrop: true},
	}
	for _, opt := range options {
		opt(r)
	}
	if r.font == nil {
		fnt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parsing caption font: %w", err)
		}
		r.font = fnt
	}
	r.captioner = NewCaptioner(r.font, r.tuning.CaptionMaxLines)
	return r, nil
}

// Render runs one image through the pipeline.
//
// The three results are distinct channels: a quantized raster on success, a
// Reject when the image is usable input but fails thresholds or the intent
// says skip, and an error only for invalid input. Callers looping over
// candidates branch on the Reject; the error means a bug.
func (r *Renderer) Render(src image.Image, intent Intent, profile DisplayProfile) (*raster.Buffer, *Reject, error) {
	if src == nil {
		return nil, nil, fmt.Errorf("%w: nil source image", ErrInvalidInput)
	}
	bounds := src.Bounds()
	srcSize := Size{W: bounds.Dx(), H: bounds.Dy()}
	if srcSize.W <= 0 || srcSize.H <= 0 {
		return nil, nil, fmt.Errorf("%w: source %dx%d", ErrInvalidInput, srcSize.W, srcSize.H)
	}
	if err := profile.validate(); err != nil {
		return nil, nil, err
	}

	strategy, rej := ResolveStrategy(intent, srcSize, profile, r.tuning, r.opts)
	if rej != nil {
		return nil, rej, nil
	}
	buf, err := r.RenderStrategy(src, strategy)
	if err != nil {
		return nil, nil, err
	}
	return buf, nil, nil
}

// RenderStrategy runs the pixel stages with an already-resolved strategy.
// Each stage consumes its input buffer and produces a new one; dimensions
// are fixed at the target size from geometry composition onward.
func (r *Renderer) RenderStrategy(src image.Image, strategy ProcessingStrategy) (*raster.Buffer, error) {
	composed := r.comp.compose(src, strategy.Placement, strategy.Target)
	if strategy.Sharpen > 0 {
		composed = imaging.Sharpen(composed, strategy.Sharpen)
	}

	buf, err := raster.FromImage(composed)
	if err != nil {
		return nil, err
	}
	buf = applyGamma(buf, strategy.Gamma)
	buf = stretchContrast(buf, strategy.ClipPercent, strategy.CostPercent)
	buf, err = dither(buf, strategy.BitDepth, strategy.DitherStrength, strategy.Kernel)
	if err != nil {
		return nil, err
	}
	if strategy.Caption != "" {
		buf, err = r.captioner.Apply(buf, strategy.Caption, r.tuning.CaptionFontSize)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}
