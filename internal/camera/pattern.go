package camera

import (
	"context"
	"image"
	"image/color"
	"sync"
)

// PatternSource produces synthetic gradient frames at the requested ideal resolution.
// Successive frames shift hue so they are distinguishable.
type PatternSource struct{}

func NewPatternSource() *PatternSource {
	return &PatternSource{}
}

func (s *PatternSource) Open(_ context.Context, constraints Constraints) (Feed, error) {
	return &patternFeed{width: constraints.Width, height: constraints.Height}, nil
}

type patternFeed struct {
	mu      sync.Mutex
	width   int
	height  int
	tick    uint8
	stopped bool
}

func (f *patternFeed) Frame(_ context.Context) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return nil, ErrStopped
	}

	frame := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			frame.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / f.width),
				G: uint8(y * 255 / f.height),
				B: f.tick,
				A: 255,
			})
		}
	}
	f.tick += 32
	return frame, nil
}

func (f *patternFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}
