package camera

import (
	"context"
	"errors"
	"image"
)

// Facing selects which physical camera a source should prefer.
type Facing string

const (
	FacingEnvironment Facing = "environment"
	FacingUser        Facing = "user"
)

var (
	ErrNoDevice         = errors.New("camera: no device available")
	ErrPermissionDenied = errors.New("camera: permission denied")
	// ErrNoFrame is returned while a feed is open but has not produced a frame yet.
	ErrNoFrame = errors.New("camera: no frame available")
	ErrStopped = errors.New("camera: feed stopped")
)

// Constraints describe the preferred feed. Width and Height are ideals, not requirements.
type Constraints struct {
	Facing Facing
	Width  int
	Height int
}

// DefaultConstraints prefers the rear camera at 1920x1080.
func DefaultConstraints() Constraints {
	return Constraints{
		Facing: FacingEnvironment,
		Width:  1920,
		Height: 1080,
	}
}

// CameraSource opens camera feeds.
type CameraSource interface {
	Open(ctx context.Context, constraints Constraints) (Feed, error)
}

// Feed is an open camera stream. Stop releases the underlying device and must be safe to
// call more than once.
type Feed interface {
	Frame(ctx context.Context) (image.Image, error)
	Stop() error
}

// FrameSink is implemented by feeds whose frames are delivered from outside, such as a
// browser pushing the current video frame.
type FrameSink interface {
	Push(frame image.Image) error
}
