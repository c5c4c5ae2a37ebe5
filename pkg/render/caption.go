package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/inkframe/inkframe/pkg/raster"
)

const (
	captionSideMargin   = 8
	captionBottomMargin = 6
	captionEllipsis     = "…"
)

// Captioner composites wrapped, outlined title text onto the bottom of an
// already-quantized raster. The font resource is injected at construction
// and shared immutably; its lifetime belongs to the pipeline factory, not
// to a package-level cache.
type Captioner struct {
	font     *opentype.Font
	maxLines int
}

// NewCaptioner returns a Captioner drawing with the given font.
func NewCaptioner(fnt *opentype.Font, maxLines int) *Captioner {
	if maxLines < 1 {
		maxLines = 1
	}
	return &Captioner{font: fnt, maxLines: maxLines}
}

// Apply draws the caption onto a copy of buf and returns it. The fill is
// white with a 1 px 8-direction black outline, both palette members, so the
// text stays legible against a dithered background and survives the
// re-flatten. Runs after halftoning only: glyph antialiasing is snapped
// back onto the buffer's quantization palette before returning.
func (c *Captioner) Apply(buf *raster.Buffer, text string, fontSize float64) (*raster.Buffer, error) {
	if text == "" {
		return buf, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating caption face: %w", err)
	}
	defer face.Close()

	lines := wrapCaption(text, charBudget(buf.W, fontSize), c.maxLines)

	out := buf.Clone()
	dst := out.Gray()
	lineHeight := int(math.Ceil(fontSize * 1.2))

	// Stack lines upward from the bottom margin.
	baseline := out.H - captionBottomMargin
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		adv := font.MeasureString(face, line).Ceil()
		x := (out.W - adv) / 2
		if x < captionSideMargin {
			x = captionSideMargin
		}
		drawOutlinedLine(dst, face, line, x, baseline)
		baseline -= lineHeight
	}

	flattenToPalette(out)
	return out, nil
}

// drawOutlinedLine draws one line: black in the 8 surrounding offsets, then
// white on top.
func drawOutlinedLine(dst *image.Gray, face font.Face, line string, x, y int) {
	d := font.Drawer{Dst: dst, Face: face}
	d.Src = image.NewUniform(color.Gray{Y: 0})
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(line)
		}
	}
	d.Src = image.NewUniform(color.Gray{Y: 255})
	d.Dot = fixed.P(x, y)
	d.DrawString(line)
}

// charBudget estimates how many characters fit on one line at the given
// font size. An average glyph is a bit over half an em wide.
func charBudget(width int, fontSize float64) int {
	budget := int(float64(width-2*captionSideMargin) / (fontSize * 0.55))
	if budget < 1 {
		budget = 1
	}
	return budget
}

// wrapCaption word-wraps text into at most maxLines lines of at most
// maxChars characters; the last line is truncated with an ellipsis when the
// text overflows.
func wrapCaption(text string, maxChars, maxLines int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if len([]rune(candidate)) <= maxChars {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = word
		if len(lines) == maxLines {
			break
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		last := []rune(lines[maxLines-1])
		if len(last) >= maxChars {
			last = append(last[:maxChars-1], []rune(captionEllipsis)...)
		} else {
			last = append(last, []rune(captionEllipsis)...)
		}
		lines = lines[:maxLines]
		lines[maxLines-1] = string(last)
	}
	// A single oversized word can still overflow its line.
	for i, line := range lines {
		if len([]rune(line)) > maxChars {
			lines[i] = truncateWithEllipsis(line, maxChars)
		}
	}
	return lines
}

func truncateWithEllipsis(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	if maxChars < 2 {
		return captionEllipsis
	}
	return string(runes[:maxChars-1]) + captionEllipsis
}

// flattenToPalette snaps every sample back onto the buffer's quantization
// set. Samples already on the palette are untouched, so only antialiased
// glyph edges move.
func flattenToPalette(buf *raster.Buffer) {
	switch buf.Format {
	case raster.Mono1:
		for i, v := range buf.Pix {
			if v < 128 {
				buf.Pix[i] = 0
			} else {
				buf.Pix[i] = 255
			}
		}
	case raster.Gray2:
		for i, v := range buf.Pix {
			buf.Pix[i] = quantizeDuo(float64(v))
		}
	}
}
