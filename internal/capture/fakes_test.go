package capture

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/jo-hoe/snapfolder/internal/camera"
)

// fakeSource hands out fakeFeeds, or fails with err.
type fakeSource struct {
	err    error
	width  int
	height int

	mu          sync.Mutex
	feeds       []*fakeFeed
	constraints camera.Constraints
}

func (s *fakeSource) Open(_ context.Context, c camera.Constraints) (camera.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constraints = c
	if s.err != nil {
		return nil, s.err
	}
	feed := &fakeFeed{width: s.width, height: s.height}
	s.feeds = append(s.feeds, feed)
	return feed, nil
}

type fakeFeed struct {
	mu     sync.Mutex
	width  int
	height int
	frames int
	stops  int
}

func (f *fakeFeed) Frame(context.Context) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(f.frames * 40), A: 255})
		}
	}
	return img, nil
}

func (f *fakeFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *fakeFeed) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// recordingSaver keeps the last saved folder in memory.
type recordingSaver struct {
	mu      sync.Mutex
	saved   map[string][]string
	saveErr error
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{saved: make(map[string][]string)}
}

func (r *recordingSaver) Save(_ context.Context, name string, images []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[name] = append([]string(nil), images...)
	return nil
}

func (r *recordingSaver) snapshot() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]string, len(r.saved))
	for k, v := range r.saved {
		out[k] = v
	}
	return out
}
