// Command inkframe renders a photograph for an e-paper panel: decode, fit,
// tone-map, dither, optionally caption, then write the result as PNG and/or
// packed panel bytes. It stands in for the fetch/serve collaborators around
// the render core.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/inkframe/inkframe/config"
	"github.com/inkframe/inkframe/pkg/render"
	"github.com/inkframe/inkframe/util/log"
)

func main() {
	var (
		inPath   = flag.String("in", "", "input image (png/jpeg/gif)")
		outPath  = flag.String("out", "", "output PNG path")
		rawPath  = flag.String("raw", "", "optional packed raster output path")
		width    = flag.Int("width", 400, "panel width in pixels")
		height   = flag.Int("height", 300, "panel height in pixels")
		bitDepth = flag.Int("bit-depth", 1, "panel bit depth (1 or 2)")
		strategy = flag.String("strategy", "pad_white", "resize strategy: stretch, crop, pad_white, pad_black")
		style    = flag.String("style", "photography", "image style tag")
		gamma    = flag.Float64("gamma", 1.0, "gamma correction (1.0-2.4)")
		sharpen  = flag.Float64("sharpen", 0.0, "sharpen amount (0.0-2.0)")
		ditherPc = flag.Int("dither", 100, "dither strength percent (0-100)")
		title    = flag.String("title", "", "optional caption text")
		strict   = flag.Bool("strict", false, "reject over-tolerance stretches instead of cropping")
		tuning   = flag.String("tuning", "", "optional TOML tuning file")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inkframe -in photo.jpg -out panel.png [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	tun := render.DefaultTuningConfig()
	if *tuning != "" {
		var err error
		tun, err = config.LoadTuning(*tuning)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	renderer, err := render.NewRenderer(
		render.WithTuning(tun),
		render.WithStrategyOptions(render.StrategyOptions{FallbackOnStretchReject: !*strict}),
	)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	src, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to decode input: %v", err)
	}
	log.Debugf("Decoded %s image %dx%d", format, src.Bounds().Dx(), src.Bounds().Dy())

	intent := render.Intent{
		Style:          render.Style(*style),
		Decision:       render.DecisionUse,
		ResizeStrategy: render.ResizeStrategy(*strategy),
		Gamma:          *gamma,
		Sharpen:        *sharpen,
		Dither:         *ditherPc,
		IncludeTitle:   *title != "",
		Title:          *title,
	}
	profile := render.DisplayProfile{Width: *width, Height: *height, BitDepth: *bitDepth}

	buf, rej, err := renderer.Render(src, intent, profile)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	if rej != nil {
		log.Printf("Image rejected: %s", rej)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(out, buf.Gray()); err != nil {
		out.Close()
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote %s (%dx%d, %s)", *outPath, buf.W, buf.H, buf.Format)

	if *rawPath != "" {
		packed, err := buf.Pack()
		if err != nil {
			log.Fatalf("Failed to pack raster: %v", err)
		}
		if err := os.WriteFile(*rawPath, packed, 0644); err != nil {
			log.Fatalf("Failed to write packed raster: %v", err)
		}
		log.Printf("Wrote %s (%d bytes)", *rawPath, len(packed))
	}
}
