package processing

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/snapfolder/internal/imaging"
)

// OrientationParams represents typed parameters for orientation command
type OrientationParams struct {
	Orientation      string
	RotateWhenSquare bool
	Clockwise        bool
}

func NewOrientationParamsFromMap(params Params) (*OrientationParams, error) {
	orientation := params.String("orientation", "portrait")
	if orientation != "portrait" && orientation != "landscape" {
		return nil, fmt.Errorf("invalid orientation: %s (must be 'portrait' or 'landscape')", orientation)
	}
	return &OrientationParams{
		Orientation:      orientation,
		RotateWhenSquare: params.Bool("rotateWhenSquare", false),
		Clockwise:        params.Bool("clockwise", true),
	}, nil
}

// OrientationCommand rotates frames by 90 degrees when they do not match the
// configured orientation.
type OrientationCommand struct {
	name   string
	params *OrientationParams
}

func NewOrientationCommand(params Params) (Command, error) {
	typedParams, err := NewOrientationParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &OrientationCommand{
		name:   "OrientationCommand",
		params: typedParams,
	}, nil
}

func (c *OrientationCommand) Name() string {
	return c.name
}

func (c *OrientationCommand) Execute(frame image.Image) (image.Image, error) {
	width := frame.Bounds().Dx()
	height := frame.Bounds().Dy()

	if width == height {
		if !c.params.RotateWhenSquare {
			return frame, nil
		}
		return c.rotate(frame), nil
	}

	isPortrait := height > width
	if isPortrait == (c.params.Orientation == "portrait") {
		return frame, nil
	}

	slog.Debug("OrientationCommand: rotating frame 90 degrees",
		"width", width,
		"height", height,
		"clockwise", c.params.Clockwise)
	return c.rotate(frame), nil
}

func (c *OrientationCommand) rotate(frame image.Image) image.Image {
	// EXIF orientation 6 is a clockwise quarter turn, 8 the counterclockwise one
	if c.params.Clockwise {
		return imaging.Orient(frame, 6)
	}
	return imaging.Orient(frame, 8)
}

func (c *OrientationCommand) GetParams() *OrientationParams {
	return c.params
}

func init() {
	DefaultRegistry.mustRegister("OrientationCommand", NewOrientationCommand)
}
