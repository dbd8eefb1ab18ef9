package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelPadding = 4
	labelMargin  = 8
	// frames wider than this get a proportionally enlarged label
	labelReferenceWidth = 640
)

var labelBackground = color.RGBA{A: 160}

// Stamp returns a copy of img with text drawn as an overlay label in the bottom-right
// corner. The label is scaled with the frame width so it stays legible on large frames.
func Stamp(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if text == "" || dst.Bounds().Empty() {
		return dst
	}

	label := renderLabel(text)

	scale := dst.Bounds().Dx() / labelReferenceWidth
	if scale < 1 {
		scale = 1
	}
	size := image.Pt(label.Bounds().Dx()*scale, label.Bounds().Dy()*scale)
	margin := labelMargin * scale
	origin := image.Pt(dst.Bounds().Dx()-size.X-margin, dst.Bounds().Dy()-size.Y-margin)
	target := image.Rectangle{Min: origin, Max: origin.Add(size)}

	draw.NearestNeighbor.Scale(dst, target, label, label.Bounds(), draw.Over, nil)
	return dst
}

func renderLabel(text string) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil() + 2*labelPadding
	height := metrics.Height.Ceil() + 2*labelPadding

	label := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(label, label.Bounds(), image.NewUniform(labelBackground), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  label,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(labelPadding, labelPadding+metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)
	return label
}
