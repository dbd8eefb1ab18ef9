package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var stillExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// DecodeFunc turns raw file bytes into a frame.
type DecodeFunc func(data []byte) (image.Image, error)

// DirectorySource replays the still images of a directory in name order, wrapping
// around at the end. It stands in for a camera on headless or kiosk installations.
type DirectorySource struct {
	dir    string
	decode DecodeFunc
}

func NewDirectorySource(dir string, decode DecodeFunc) *DirectorySource {
	return &DirectorySource{dir: dir, decode: decode}
}

func (s *DirectorySource) Open(_ context.Context, _ Constraints) (Feed, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !stillExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(s.dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrNoDevice, s.dir)
	}
	sort.Strings(files)

	slog.Debug("directory camera opened", "dir", s.dir, "frames", len(files))
	return &directoryFeed{files: files, decode: s.decode}, nil
}

type directoryFeed struct {
	mu      sync.Mutex
	files   []string
	next    int
	decode  DecodeFunc
	stopped bool
}

func (f *directoryFeed) Frame(_ context.Context) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return nil, ErrStopped
	}

	path := f.files[f.next]
	f.next = (f.next + 1) % len(f.files)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame %s: %w", path, err)
	}
	frame, err := f.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}
	return frame, nil
}

func (f *directoryFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}
