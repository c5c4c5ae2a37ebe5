package render

import (
	"math"

	"github.com/inkframe/inkframe/pkg/raster"
)

// applyGamma remaps the buffer through the power-law curve
// out = 255·(in/255)^(1/gamma). Gamma 1.0 is identity and skips the pass
// entirely to avoid needless rounding. Runs before contrast stretching:
// with only 2-4 output levels, shadow detail is gone unless it is lifted
// into the working range first.
func applyGamma(buf *raster.Buffer, gamma float64) *raster.Buffer {
	if gamma == 1.0 {
		return buf
	}
	inv := 1 / gamma
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, inv)))
	}
	out := buf.Clone()
	for i, v := range buf.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}
