package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropFraction(t *testing.T) {
	// 2:1 source into 1:1 target crops half the width.
	assert.InDelta(t, 0.5, CropFraction(Size{200, 100}, Size{100, 100}), 1e-12)
	// 1:2 source into 1:1 target crops half the height.
	assert.InDelta(t, 0.5, CropFraction(Size{100, 200}, Size{100, 100}), 1e-12)
	// Matching aspect ratio needs no crop.
	assert.InDelta(t, 0, CropFraction(Size{800, 600}, Size{400, 300}), 1e-12)
}

func TestPadFraction(t *testing.T) {
	// 500x500 into 400x300 fits at 300x300, leaving a quarter uncovered.
	assert.InDelta(t, 0.25, PadFraction(Size{500, 500}, Size{400, 300}), 1e-12)
	assert.InDelta(t, 0, PadFraction(Size{400, 300}, Size{400, 300}), 1e-12)
}

func TestResolveGeometry_ThresholdBoundaries(t *testing.T) {
	// Each transform is accepted at a fraction exactly equal to its
	// threshold and rejected one ulp above it.
	tests := []struct {
		name     string
		src, tgt Size
		strategy ResizeStrategy
		fraction float64
		code     RejectCode
	}{
		{"Crop", Size{200, 100}, Size{100, 100}, ResizeCrop, 0.5, RejectCropLimit},
		{"Stretch", Size{125, 100}, Size{100, 100}, ResizeStretch, 0.25, RejectStretchLimit},
		{"Pad", Size{300, 300}, Size{400, 300}, ResizePadWhite, 0.25, RejectPadLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thr := Thresholds{Crop: tt.fraction, Stretch: tt.fraction, Pad: tt.fraction}
			_, rej := ResolveGeometry(tt.src, tt.tgt, tt.strategy, thr, false)
			assert.Nil(t, rej, "fraction exactly at threshold must be accepted")

			below := math.Nextafter(tt.fraction, 0)
			thr = Thresholds{Crop: below, Stretch: below, Pad: below}
			_, rej = ResolveGeometry(tt.src, tt.tgt, tt.strategy, thr, false)
			require.NotNil(t, rej, "fraction one ulp above threshold must be rejected")
			assert.Equal(t, tt.code, rej.Code)
		})
	}
}

func TestResolveGeometry_StretchFallback(t *testing.T) {
	src := Size{200, 100} // distortion 1.0 vs a square target
	tgt := Size{100, 100}
	thr := Thresholds{Crop: 0.5, Stretch: 0.3, Pad: 0.5}

	t.Run("StrictRejects", func(t *testing.T) {
		_, rej := ResolveGeometry(src, tgt, ResizeStretch, thr, false)
		require.NotNil(t, rej)
		assert.Equal(t, RejectStretchLimit, rej.Code)
	})

	t.Run("FallbackCrops", func(t *testing.T) {
		p, rej := ResolveGeometry(src, tgt, ResizeStretch, thr, true)
		require.Nil(t, rej)
		assert.Equal(t, PlaceCrop, p.Mode)
	})

	t.Run("InToleranceStretches", func(t *testing.T) {
		p, rej := ResolveGeometry(Size{110, 100}, tgt, ResizeStretch, thr, false)
		require.Nil(t, rej)
		assert.Equal(t, PlaceStretch, p.Mode)
	})
}

func TestResolveGeometry_UltrawideStretchRejected(t *testing.T) {
	// 21:9 into 4:3 distorts far beyond a 0.30 stretch budget.
	src := Size{2100, 900}
	tgt := Size{400, 300}
	thr := Thresholds{Crop: 0.5, Stretch: 0.3, Pad: 0.5}

	_, rej := ResolveGeometry(src, tgt, ResizeStretch, thr, false)
	require.NotNil(t, rej)
	assert.Equal(t, RejectStretchLimit, rej.Code)
}

func TestResolveGeometry_PadColor(t *testing.T) {
	src := Size{300, 300}
	tgt := Size{400, 300}
	thr := Thresholds{Crop: 0.5, Stretch: 0.3, Pad: 0.5}

	t.Run("White", func(t *testing.T) {
		p, rej := ResolveGeometry(src, tgt, ResizePadWhite, thr, false)
		require.Nil(t, rej)
		assert.Equal(t, PlacePad, p.Mode)
		assert.Equal(t, uint8(255), p.PadValue)
	})

	t.Run("Black", func(t *testing.T) {
		p, rej := ResolveGeometry(src, tgt, ResizePadBlack, thr, false)
		require.Nil(t, rej)
		assert.Equal(t, uint8(0), p.PadValue)
	})

	t.Run("UnknownStrategyDefaultsToWhitePad", func(t *testing.T) {
		p, rej := ResolveGeometry(src, tgt, ResizeStrategy("mystery"), thr, false)
		require.Nil(t, rej)
		assert.Equal(t, PlacePad, p.Mode)
		assert.Equal(t, uint8(255), p.PadValue)
	})
}
