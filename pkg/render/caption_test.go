package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/inkframe/inkframe/pkg/raster"
)

func testCaptioner(t *testing.T) *Captioner {
	t.Helper()
	fnt, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	return NewCaptioner(fnt, 2)
}

func quantizedBuffer(t *testing.T, w, h int, format raster.Format, fill uint8) *raster.Buffer {
	t.Helper()
	buf, err := raster.New(w, h, format)
	require.NoError(t, err)
	for i := range buf.Pix {
		buf.Pix[i] = fill
	}
	return buf
}

func TestCaptioner_Apply(t *testing.T) {
	c := testCaptioner(t)

	t.Run("EmptyTextIsNoop", func(t *testing.T) {
		buf := quantizedBuffer(t, 200, 100, raster.Mono1, 255)
		out, err := c.Apply(buf, "", 16)
		require.NoError(t, err)
		assert.Same(t, buf, out)
	})

	t.Run("MonoStaysOnPalette", func(t *testing.T) {
		buf := quantizedBuffer(t, 200, 100, raster.Mono1, 255)
		out, err := c.Apply(buf, "hello world", 16)
		require.NoError(t, err)
		assert.True(t, out.OnPalette(), "caption must survive re-flattening onto {0,255}")

		// The black outline must have landed somewhere.
		black := 0
		for _, v := range out.Pix {
			if v == 0 {
				black++
			}
		}
		assert.Positive(t, black, "outline pixels expected")
	})

	t.Run("DuoStaysOnPalette", func(t *testing.T) {
		buf := quantizedBuffer(t, 200, 100, raster.Gray2, 170)
		out, err := c.Apply(buf, "four levels of gray", 16)
		require.NoError(t, err)
		assert.True(t, out.OnPalette())
	})

	t.Run("InputBufferUntouched", func(t *testing.T) {
		buf := quantizedBuffer(t, 200, 100, raster.Mono1, 255)
		_, err := c.Apply(buf, "side effects", 16)
		require.NoError(t, err)
		for _, v := range buf.Pix {
			assert.Equal(t, uint8(255), v)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		buf := quantizedBuffer(t, 200, 100, raster.Mono1, 255)
		a, err := c.Apply(buf, "same text, same pixels", 16)
		require.NoError(t, err)
		b, err := c.Apply(buf, "same text, same pixels", 16)
		require.NoError(t, err)
		assert.Equal(t, a.Pix, b.Pix)
	})
}

func TestWrapCaption(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		expected []string
	}{
		{"SingleLine", "short title", 20, []string{"short title"}},
		{"TwoLines", "aaa bbb ccc ddd", 7, []string{"aaa bbb", "ccc ddd"}},
		{"OverflowEllipsis", "aaa bbb ccc ddd eee fff", 7, []string{"aaa bbb", "ccc dd…"}},
		{"LongWordTruncated", "abcdefghijklmnop", 5, []string{"abcd…"}},
		{"Empty", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapCaption(tt.text, tt.maxChars, 2))
		})
	}
}

func TestCharBudget(t *testing.T) {
	assert.Equal(t, 43, charBudget(400, 16))
	// Tiny panels still get at least one character.
	assert.Equal(t, 1, charBudget(10, 16))
}
