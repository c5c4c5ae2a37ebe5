package render

import (
	"math"

	"github.com/inkframe/inkframe/pkg/raster"
)

// safetyFloorFraction is the minimum share of pixels clipped on each side
// regardless of budgets. It guards against pathological histograms whose
// tails are nearly empty.
const safetyFloorFraction = 0.005

// stretchContrast rescales the buffer so that its useful tonal range spans
// the full 0-255 interval. Clip points are found with a cost-weighted
// frontier walk: each candidate bin is charged by its pixel count weighted
// by distance from the mean, so the search clips outliers before it eats
// into bulk tonal range. A plain percentile clip over-darkens or
// over-brightens skewed histograms; this version is gentler.
//
// clipPercent bounds the clipped pixel share, costPercent bounds the
// accumulated cost share. Whichever budget runs out first stops the walk.
func stretchContrast(buf *raster.Buffer, clipPercent, costPercent float64) *raster.Buffer {
	var hist [256]int
	for _, v := range buf.Pix {
		hist[v]++
	}
	total := len(buf.Pix)

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}
	avg := sum / float64(total)

	var sumDev float64
	for i, n := range hist {
		sumDev += float64(n) * math.Abs(float64(i)-avg)
	}

	targetArea := float64(total) * clipPercent / 100
	targetCost := sumDev * costPercent / 100
	minSafety := float64(total) * safetyFloorFraction

	binCost := func(i int) float64 {
		return float64(hist[i]) * math.Abs(float64(i)-avg)
	}

	left, right := 0, 255
	var area, cost float64

	// Safety floor first: force a minimum clip on each side.
	for clipped := 0.0; left < right && clipped < minSafety; {
		clipped += float64(hist[left])
		area += float64(hist[left])
		cost += binCost(left)
		left++
	}
	for clipped := 0.0; left < right && clipped < minSafety; {
		clipped += float64(hist[right])
		area += float64(hist[right])
		cost += binCost(right)
		right--
	}

	// Cost-weighted walk: advance whichever side is cheaper to clip. Ties
	// advance the dark side.
	for left < right && area < targetArea && cost < targetCost {
		cl, cr := binCost(left), binCost(right)
		if cl <= cr {
			area += float64(hist[left])
			cost += cl
			left++
		} else {
			area += float64(hist[right])
			cost += cr
			right--
		}
	}

	// right<=left happens on degenerate histograms; clamping the
	// denominator keeps the rescale defined.
	denom := right - left
	if denom < 1 {
		denom = 1
	}
	scale := 255 / float64(denom)

	out := buf.Clone()
	var lut [256]uint8
	for i := range lut {
		v := math.Round((float64(i) - float64(left)) * scale)
		lut[i] = uint8(math.Min(255, math.Max(0, v)))
	}
	for i, v := range buf.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}
