package processing

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

// CropParams represents typed parameters for crop command
type CropParams struct {
	Height int
	Width  int
}

func NewCropParamsFromMap(params Params) (*CropParams, error) {
	height, err := params.PositiveInt("height")
	if err != nil {
		return nil, err
	}
	width, err := params.PositiveInt("width")
	if err != nil {
		return nil, err
	}
	return &CropParams{
		Height: height,
		Width:  width,
	}, nil
}

// CropCommand cuts a centered region of at most Width x Height out of each frame.
type CropCommand struct {
	name   string
	params *CropParams
}

func NewCropCommand(params Params) (Command, error) {
	typedParams, err := NewCropParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &CropCommand{
		name:   "CropCommand",
		params: typedParams,
	}, nil
}

func (c *CropCommand) Name() string {
	return c.name
}

func (c *CropCommand) Execute(frame image.Image) (image.Image, error) {
	bounds := frame.Bounds()
	cropWidth := min(c.params.Width, bounds.Dx())
	cropHeight := min(c.params.Height, bounds.Dy())
	if cropWidth == bounds.Dx() && cropHeight == bounds.Dy() {
		return frame, nil
	}

	x0 := bounds.Min.X + (bounds.Dx()-cropWidth)/2
	y0 := bounds.Min.Y + (bounds.Dy()-cropHeight)/2
	slog.Debug("CropCommand: performing center crop",
		"crop_x", x0,
		"crop_y", y0,
		"crop_width", cropWidth,
		"crop_height", cropHeight)

	cropped := image.NewRGBA(image.Rect(0, 0, cropWidth, cropHeight))
	draw.Draw(cropped, cropped.Bounds(), frame, image.Pt(x0, y0), draw.Src)
	return cropped, nil
}

// GetParams returns the typed parameters
func (c *CropCommand) GetParams() *CropParams {
	return c.params
}

func init() {
	DefaultRegistry.mustRegister("CropCommand", NewCropCommand)
}
