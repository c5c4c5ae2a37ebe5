package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/inkframe/inkframe/util/log"
)

// composer applies a resolved placement to the decoded source image,
// producing a raster at exactly the target dimensions.
type composer struct {
	resampler imaging.ResampleFilter
	// smartCrop enables content-aware crop window selection. When off, or
	// when the analyzer fails, crops are centered.
	smartCrop bool
}

func (c *composer) compose(src image.Image, p Placement, tgt Size) *image.NRGBA {
	switch p.Mode {
	case PlaceStretch:
		return imaging.Resize(src, tgt.W, tgt.H, c.resampler)

	case PlaceCrop:
		if c.smartCrop {
			analyzer := smartcrop.NewAnalyzer(&imagingResizer{resampler: c.resampler})
			window, err := analyzer.FindBestCrop(src, tgt.W, tgt.H)
			if err == nil {
				return imaging.Resize(imaging.Crop(src, window), tgt.W, tgt.H, c.resampler)
			}
			log.Debugf("smartcrop analyzer failed, falling back to center crop: %v", err)
		}
		return imaging.Fill(src, tgt.W, tgt.H, imaging.Center, c.resampler)

	default: // PlacePad
		bg := imaging.New(tgt.W, tgt.H, color.Gray{Y: p.PadValue})
		fitted := imaging.Fit(src, tgt.W, tgt.H, c.resampler)
		return imaging.PasteCenter(bg, fitted)
	}
}

// imagingResizer adapts imaging.Resize to the smartcrop.Resizer interface.
type imagingResizer struct {
	resampler imaging.ResampleFilter
}

func (r *imagingResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
