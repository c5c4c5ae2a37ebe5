package render

import "math"

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// AspectRatio returns W/H.
func (s Size) AspectRatio() float64 {
	return float64(s.W) / float64(s.H)
}

// Thresholds bound the acceptable cost of each geometry transform. The
// three limits are independent because the perceptual cost of each
// transform differs: stretch is forgiving for line art and memes, cropping
// risks losing subjects or text, padding wastes screen area.
type Thresholds struct {
	Crop    float64 `json:"crop_threshold" toml:"crop_threshold"`
	Stretch float64 `json:"stretch_threshold" toml:"stretch_threshold"`
	Pad     float64 `json:"pad_threshold" toml:"pad_threshold"`
}

// PlacementMode is the concrete geometry transform to apply.
type PlacementMode int

// Placement modes.
const (
	PlaceStretch PlacementMode = iota
	PlaceCrop
	PlacePad
)

var placementNames = [...]string{"Stretch", "Crop", "Pad"}

// String returns the name of the placement mode.
func (m PlacementMode) String() string {
	if m >= 0 && int(m) < len(placementNames) {
		return placementNames[m]
	}
	return "PlacementMode(?)"
}

// Placement is a resolved geometry decision.
type Placement struct {
	Mode PlacementMode
	// PadValue is the background sample for PlacePad: 255 unless black
	// padding was explicitly requested.
	PadValue uint8
}

// CropFraction returns the share of the longer relative dimension that a
// crop-to-fill would discard.
func CropFraction(src, tgt Size) float64 {
	w, h := float64(src.W), float64(src.H)
	tgtAR := tgt.AspectRatio()
	if src.AspectRatio() > tgtAR {
		return (w - h*tgtAR) / w
	}
	return (h - w/tgtAR) / h
}

// StretchDistortion returns the aspect-ratio distortion a full stretch
// would introduce.
func StretchDistortion(src, tgt Size) float64 {
	return math.Abs(src.AspectRatio()/tgt.AspectRatio() - 1)
}

// PadFraction returns the share of the target area left uncovered after
// fitting the source inside the target.
func PadFraction(src, tgt Size) float64 {
	scale := math.Min(float64(tgt.W)/float64(src.W), float64(tgt.H)/float64(src.H))
	fitted := float64(src.W) * scale * float64(src.H) * scale
	return 1 - fitted/(float64(tgt.W)*float64(tgt.H))
}

// ResolveGeometry turns a requested resize strategy into a concrete
// placement, or rejects the image when the transform would cost more than
// the threshold allows. A fraction exactly at its threshold is accepted.
//
// A stretch over tolerance either rejects (strict path) or falls back to
// crop-to-fill (fallbackOnStretchReject, the classifier-driven path). The
// fallback is not re-gated by the crop threshold: falling back must not
// reintroduce the failure it exists to avoid.
//
// An unrecognized strategy tag resolves to white padding: the strategy is
// advisory input and degrades gracefully.
func ResolveGeometry(src, tgt Size, strategy ResizeStrategy, thr Thresholds, fallbackOnStretchReject bool) (Placement, *Reject) {
	switch strategy {
	case ResizeCrop:
		frac := CropFraction(src, tgt)
		if frac > thr.Crop {
			return Placement{}, rejectf(RejectCropLimit, "crop limit exceeded (%.1f%% > %.1f%%)", frac*100, thr.Crop*100)
		}
		return Placement{Mode: PlaceCrop}, nil

	case ResizeStretch:
		dist := StretchDistortion(src, tgt)
		if dist > thr.Stretch {
			if fallbackOnStretchReject {
				return Placement{Mode: PlaceCrop}, nil
			}
			return Placement{}, rejectf(RejectStretchLimit, "stretch limit exceeded (%.1f%% > %.1f%%)", dist*100, thr.Stretch*100)
		}
		return Placement{Mode: PlaceStretch}, nil

	default:
		frac := PadFraction(src, tgt)
		if frac > thr.Pad {
			return Placement{}, rejectf(RejectPadLimit, "padding limit exceeded (%.1f%% > %.1f%%)", frac*100, thr.Pad*100)
		}
		pad := uint8(255)
		if strategy == ResizePadBlack {
			pad = 0
		}
		return Placement{Mode: PlacePad, PadValue: pad}, nil
	}
}
