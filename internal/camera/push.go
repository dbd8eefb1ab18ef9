package camera

import (
	"context"
	"image"
	"sync"
)

// PushSource opens feeds that hold the most recent frame delivered by the client page.
// The browser owns the physical camera; the feed only mirrors what it sends.
type PushSource struct{}

func NewPushSource() *PushSource {
	return &PushSource{}
}

func (s *PushSource) Open(_ context.Context, _ Constraints) (Feed, error) {
	return &PushFeed{}, nil
}

var _ FrameSink = (*PushFeed)(nil)

type PushFeed struct {
	mu      sync.Mutex
	frame   image.Image
	stopped bool
}

func (f *PushFeed) Push(frame image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return ErrStopped
	}
	f.frame = frame
	return nil
}

func (f *PushFeed) Frame(_ context.Context) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return nil, ErrStopped
	}
	if f.frame == nil {
		return nil, ErrNoFrame
	}
	return f.frame, nil
}

func (f *PushFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.frame = nil
	return nil
}
