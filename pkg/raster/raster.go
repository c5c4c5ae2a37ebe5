// Package raster provides the sample buffer that flows through the render
// pipeline: an owned, row-major grid of 8-bit samples that may be restricted
// to a 1-bit or 2-bit quantization palette, plus packing for panel transport.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Format describes which palette a buffer's samples are drawn from.
type Format int

const (
	// Gray8 is full 8-bit grayscale, the working format between stages.
	Gray8 Format = iota
	// Mono1 restricts samples to {0, 255}.
	Mono1
	// Gray2 restricts samples to {0, 85, 170, 255}.
	Gray2

	formatCount // sentinel for validation
)

var formatNames = [formatCount]string{"Gray8", "Mono1", "Gray2"}

// String returns the name of the format.
func (f Format) String() string {
	if f >= 0 && f < formatCount {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f >= 0 && f < formatCount
}

// Levels returns the number of gray levels representable in the format.
func (f Format) Levels() int {
	switch f {
	case Mono1:
		return 2
	case Gray2:
		return 4
	default:
		return 256
	}
}

// Palette returns the allowed sample values for quantized formats, or nil
// for Gray8.
func (f Format) Palette() []uint8 {
	switch f {
	case Mono1:
		return []uint8{0, 255}
	case Gray2:
		return []uint8{0, 85, 170, 255}
	default:
		return nil
	}
}

// ErrInvalidBuffer indicates a nil, empty or inconsistent source buffer.
// It is the hard failure channel: rejects are values, this is a bug or a
// malformed input.
var ErrInvalidBuffer = errors.New("raster: invalid buffer")

// Buffer is an owned grid of samples, one byte per sample, row-major.
// Dimensions never change once the buffer is created; pipeline stages
// consume their input buffer and produce a new one.
type Buffer struct {
	W, H   int
	Pix    []uint8
	Format Format
}

// New allocates a zeroed buffer of the given dimensions.
func New(w, h int, f Format) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBuffer, w, h)
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBuffer, f)
	}
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h), Format: f}, nil
}

// FromImage converts a decoded image to an 8-bit grayscale buffer using the
// standard luminance weights.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidBuffer)
	}
	b := img.Bounds()
	buf, err := New(b.Dx(), b.Dy(), Gray8)
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			buf.Pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return buf, nil
}

// At returns the sample at (x, y). No bounds checking.
func (b *Buffer) At(x, y int) uint8 {
	return b.Pix[y*b.W+x]
}

// Set writes the sample at (x, y). No bounds checking.
func (b *Buffer) Set(x, y int, v uint8) {
	b.Pix[y*b.W+x] = v
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{W: b.W, H: b.H, Pix: pix, Format: b.Format}
}

// Gray wraps the buffer in an image.Gray sharing the same pixel storage.
// Mutations through the returned image are visible in the buffer.
func (b *Buffer) Gray() *image.Gray {
	return &image.Gray{Pix: b.Pix, Stride: b.W, Rect: image.Rect(0, 0, b.W, b.H)}
}

// OnPalette reports whether every sample is a member of the buffer's
// quantization palette. Gray8 buffers are trivially on palette.
func (b *Buffer) OnPalette() bool {
	pal := b.Format.Palette()
	if pal == nil {
		return true
	}
	var allowed [256]bool
	for _, v := range pal {
		allowed[v] = true
	}
	for _, v := range b.Pix {
		if !allowed[v] {
			return false
		}
	}
	return true
}

// Pack encodes a quantized buffer into device transport bytes, MSB first:
// 8 pixels per byte for Mono1, 4 pixels per byte for Gray2. Rows are padded
// to a whole byte. Bit value 1 (Mono1) and code 3 (Gray2) mean white.
func (b *Buffer) Pack() ([]byte, error) {
	switch b.Format {
	case Mono1:
		stride := (b.W + 7) / 8
		out := make([]byte, stride*b.H)
		for y := 0; y < b.H; y++ {
			for x := 0; x < b.W; x++ {
				if b.At(x, y) >= 128 {
					out[y*stride+x/8] |= 0x80 >> (x % 8)
				}
			}
		}
		return out, nil
	case Gray2:
		stride := (b.W + 3) / 4
		out := make([]byte, stride*b.H)
		for y := 0; y < b.H; y++ {
			for x := 0; x < b.W; x++ {
				code := b.At(x, y) / 85
				shift := uint(6 - 2*(x%4))
				out[y*stride+x/4] |= code << shift
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot pack %s", ErrInvalidBuffer, b.Format)
	}
}
