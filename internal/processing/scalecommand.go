package processing

import (
	"image"
	"log/slog"

	"github.com/jo-hoe/snapfolder/internal/imaging"
)

// ScaleCommand shrinks frames wider than maxWidth, preserving the aspect ratio. It keeps
// stored data URIs small when the camera delivers full-resolution frames.
type ScaleCommand struct {
	name     string
	maxWidth int
}

func NewScaleCommand(params Params) (Command, error) {
	maxWidth, err := params.PositiveInt("maxWidth")
	if err != nil {
		return nil, err
	}
	return &ScaleCommand{
		name:     "ScaleCommand",
		maxWidth: maxWidth,
	}, nil
}

func (c *ScaleCommand) Name() string {
	return c.name
}

func (c *ScaleCommand) Execute(frame image.Image) (image.Image, error) {
	if frame.Bounds().Dx() <= c.maxWidth {
		return frame, nil
	}
	slog.Debug("ScaleCommand: scaling frame",
		"orig_width", frame.Bounds().Dx(),
		"max_width", c.maxWidth)
	return imaging.Fit(frame, c.maxWidth), nil
}

func init() {
	DefaultRegistry.mustRegister("ScaleCommand", NewScaleCommand)
}
