package render

import (
	"fmt"
	"math"
)

// DisplayProfile describes the target panel.
type DisplayProfile struct {
	Width    int `json:"display_width"`
	Height   int `json:"display_height"`
	BitDepth int `json:"bit_depth"` // 1 or 2
}

// Target returns the panel dimensions as a Size.
func (p DisplayProfile) Target() Size {
	return Size{W: p.Width, H: p.Height}
}

func (p DisplayProfile) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalidInput, p.Width, p.Height)
	}
	if p.BitDepth != 1 && p.BitDepth != 2 {
		return fmt.Errorf("%w: bit depth %d", ErrInvalidInput, p.BitDepth)
	}
	return nil
}

// ProcessingStrategy holds the fully resolved, in-range technical
// parameters for one render call. Immutable once built.
type ProcessingStrategy struct {
	Placement Placement
	Target    Size
	BitDepth  int

	Gamma          float64
	Sharpen        float64
	DitherStrength float64
	Kernel         Kernel

	ClipPercent float64
	CostPercent float64

	// Caption is the title to composite, empty for none.
	Caption string
}

// ManualParams are operator-chosen processing values used when the
// classifier's advisory values are switched off for a device.
type ManualParams struct {
	Gamma   float64 `json:"gamma"`
	Sharpen float64 `json:"sharpen"`
	Dither  int     `json:"dither"`
}

// StrategyOptions select between the two historical call-site behaviors.
type StrategyOptions struct {
	// FallbackOnStretchReject makes an over-tolerance stretch fall back
	// to crop-to-fill instead of rejecting. The classifier-driven path
	// sets this; the strict/manual path does not.
	FallbackOnStretchReject bool
	// Manual, when set, replaces the intent's advisory gamma/sharpen/
	// dither values. Manual renders never composite a caption.
	Manual *ManualParams
}

// inRange reports whether v is a finite value in [lo, hi].
func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

// ResolveStrategy translates an untrusted Intent into a ProcessingStrategy,
// or rejects the image. Out-of-range advisory values are replaced with the
// tuning defaults, never clamped and never fatal: advisory data degrades
// gracefully.
func ResolveStrategy(intent Intent, src Size, profile DisplayProfile, tun TuningConfig, opts StrategyOptions) (ProcessingStrategy, *Reject) {
	// The skip verdict short-circuits before any geometry or numeric work.
	if intent.Decision == DecisionSkip {
		return ProcessingStrategy{}, rejectf(RejectIntentSkip, "classifier decision: skip")
	}

	tgt := profile.Target()

	// Sources under half the target in either dimension have too little
	// signal to survive quantization.
	if float64(src.W) < float64(tgt.W)*0.5 || float64(src.H) < float64(tgt.H)*0.5 {
		return ProcessingStrategy{}, rejectf(RejectTooSmall, "source %dx%d under 50%% of %dx%d", src.W, src.H, tgt.W, tgt.H)
	}

	// Aspect prefilter: beyond the widest threshold no strategy can
	// accept the image, so reject before any pixel work.
	maxThr := math.Max(tun.Thresholds.Crop, math.Max(tun.Thresholds.Stretch, tun.Thresholds.Pad))
	if maxThr < 1 {
		srcAR, tgtAR := src.AspectRatio(), tgt.AspectRatio()
		if srcAR > tgtAR/(1-maxThr) {
			return ProcessingStrategy{}, rejectf(RejectAspectLimit, "aspect ratio %.2f too wide", srcAR)
		}
		if srcAR < tgtAR*(1-maxThr) {
			return ProcessingStrategy{}, rejectf(RejectAspectLimit, "aspect ratio %.2f too narrow", srcAR)
		}
	}

	gamma, sharpen, ditherVal := intent.Gamma, intent.Sharpen, intent.Dither
	if opts.Manual != nil {
		gamma, sharpen, ditherVal = opts.Manual.Gamma, opts.Manual.Sharpen, opts.Manual.Dither
	}
	if !inRange(gamma, tun.GammaMin, tun.GammaMax) {
		gamma = tun.DefaultGamma
	}
	if !inRange(sharpen, 0, tun.SharpenMax) {
		sharpen = tun.DefaultSharpen
	}
	if ditherVal < 0 || ditherVal > 100 {
		ditherVal = tun.DefaultDither
	}

	placement, rej := ResolveGeometry(src, tgt, intent.ResizeStrategy, tun.Thresholds, opts.FallbackOnStretchReject)
	if rej != nil {
		return ProcessingStrategy{}, rej
	}

	// Burkes spreads error wider, which reads better on 1-bit photographs;
	// everything else keeps Floyd-Steinberg.
	kernel := FloydSteinberg
	if profile.BitDepth == 1 && intent.Style == StylePhotography {
		kernel = Burkes
	}

	caption := ""
	if opts.Manual == nil && intent.IncludeTitle {
		caption = intent.Title
	}

	return ProcessingStrategy{
		Placement:      placement,
		Target:         tgt,
		BitDepth:       profile.BitDepth,
		Gamma:          gamma,
		Sharpen:        sharpen,
		DitherStrength: float64(ditherVal) / 100,
		Kernel:         kernel,
		ClipPercent:    tun.clipPercent(profile.BitDepth),
		CostPercent:    tun.CostPercent,
		Caption:        caption,
	}, nil
}
