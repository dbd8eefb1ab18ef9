package imaging

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

//go:embed placeholder.svg
var placeholderSVG []byte

// Thumbnail decodes data and scales it to width, preserving the aspect ratio. Images
// narrower than width are not enlarged. The result is JPEG encoded.
func Thumbnail(data []byte, width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", width)
	}
	src, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(Fit(src, width), DefaultJPEGQuality)
}

// Fit scales img down to at most width pixels wide, preserving the aspect ratio.
func Fit(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Placeholder renders the empty-folder icon as a square PNG.
func Placeholder(width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid placeholder size: %d", width)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(placeholderSVG))
	if err != nil {
		return nil, fmt.Errorf("failed to parse placeholder SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(width))

	dst := image.NewRGBA(image.Rect(0, 0, width, width))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{243, 244, 246, 255}), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, width, dst, dst.Bounds())
	dasher := rasterx.NewDasher(width, width, scanner)
	icon.Draw(dasher, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder PNG: %w", err)
	}
	return buf.Bytes(), nil
}
