package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStretchContrast(t *testing.T) {
	t.Run("MonotonicOnRamp", func(t *testing.T) {
		ramp := make([]uint8, 256)
		for i := range ramp {
			ramp[i] = uint8(i)
		}
		out := stretchContrast(grayBuffer(t, 256, 1, ramp), 20, 6)
		for i := 1; i < 256; i++ {
			assert.GreaterOrEqual(t, out.Pix[i], out.Pix[i-1],
				"contrast stretch must preserve sample ordering")
		}
	})

	t.Run("ExpandsTwoToneImage", func(t *testing.T) {
		// 100 samples at 50 and 100 at 200. The safety floor clips past
		// both masses, so the rescale drives them to full black and white.
		pix := make([]uint8, 200)
		for i := range pix {
			if i < 100 {
				pix[i] = 50
			} else {
				pix[i] = 200
			}
		}
		out := stretchContrast(grayBuffer(t, 20, 10, pix), 20, 6)
		assert.Equal(t, uint8(0), out.Pix[0])
		assert.Equal(t, uint8(255), out.Pix[199])
	})

	t.Run("DegenerateHistogramNoPanic", func(t *testing.T) {
		// A uniform image collapses the frontier; the clamped denominator
		// keeps the rescale defined and the output uniform.
		pix := make([]uint8, 100)
		for i := range pix {
			pix[i] = 128
		}
		out := stretchContrast(grayBuffer(t, 10, 10, pix), 20, 6)
		for _, v := range out.Pix {
			assert.Equal(t, out.Pix[0], v)
		}
	})

	t.Run("ZeroBudgetsStillClipSafetyFloor", func(t *testing.T) {
		ramp := make([]uint8, 256)
		for i := range ramp {
			ramp[i] = uint8(i)
		}
		out := stretchContrast(grayBuffer(t, 256, 1, ramp), 0, 0)
		// With 256 samples the 0.5% floor clips one bin per side.
		assert.Equal(t, uint8(0), out.Pix[0])
		assert.Equal(t, uint8(0), out.Pix[1])
		assert.Equal(t, uint8(255), out.Pix[255])
	})

	t.Run("Deterministic", func(t *testing.T) {
		pix := make([]uint8, 400)
		for i := range pix {
			pix[i] = uint8((i * 37) % 256)
		}
		a := stretchContrast(grayBuffer(t, 20, 20, pix), 22, 6)
		b := stretchContrast(grayBuffer(t, 20, 20, pix), 22, 6)
		assert.Equal(t, a.Pix, b.Pix)
	})
}
