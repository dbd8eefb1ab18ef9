package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jo-hoe/snapfolder/internal/camera"
	"github.com/jo-hoe/snapfolder/internal/imaging"
	"github.com/jo-hoe/snapfolder/internal/link"
	"github.com/jo-hoe/snapfolder/internal/processing"
)

const DefaultTimestampFormat = "2006-01-02 15:04:05"

var (
	// ErrInvalidSubmission rejects a submit with an invalid link, an empty name, or no images.
	ErrInvalidSubmission = errors.New("invalid link or missing folder name/photos")
	ErrSessionClosed     = errors.New("capture session is closed")
	// ErrNotPushable is returned by CaptureFrame when the feed does not accept pushed frames.
	ErrNotPushable = errors.New("camera feed does not accept frames")
)

// CapturedImage is one stamped, encoded frame.
type CapturedImage struct {
	Data       string `json:"data"`
	CapturedAt string `json:"capturedAt"`
}

// FolderSaver persists a submitted folder.
type FolderSaver interface {
	Save(ctx context.Context, name string, images []string) error
}

type Options struct {
	Constraints     camera.Constraints
	Pipeline        *processing.CommandInvoker
	Policy          link.Policy
	TimestampFormat string
	Location        *time.Location
	JPEGQuality     int
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Constraints == (camera.Constraints{}) {
		o.Constraints = camera.DefaultConstraints()
	}
	if o.Pipeline == nil {
		o.Pipeline = processing.NewCommandInvoker(nil)
	}
	if o.Policy == nil {
		o.Policy = link.AlwaysValid
	}
	if o.TimestampFormat == "" {
		o.TimestampFormat = DefaultTimestampFormat
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = imaging.DefaultJPEGQuality
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session holds the images captured during one visit to a capture link together with
// the camera feed backing it. The feed is released exactly once by Close.
type Session struct {
	id       string
	linkPath string
	source   camera.CameraSource
	store    FolderSaver
	opts     Options

	mu       sync.Mutex
	feed     camera.Feed
	startErr error
	images   []CapturedImage
	closed   bool

	closeOnce sync.Once
	closeErr  error
}

func NewSession(id, linkPath string, source camera.CameraSource, store FolderSaver, opts Options) *Session {
	return &Session{
		id:       id,
		linkPath: linkPath,
		source:   source,
		store:    store,
		opts:     opts.withDefaults(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) LinkPath() string {
	return s.linkPath
}

// Start opens the camera feed. A failure leaves the session without a feed; it is logged
// and kept for Err, and the session remains usable for everything except Capture.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.feed != nil {
		return
	}

	feed, err := s.source.Open(ctx, s.opts.Constraints)
	if err != nil {
		s.startErr = err
		slog.Error("failed to access the camera", "session_id", s.id, "error", err)
		return
	}
	s.feed = feed
	s.startErr = nil
	slog.Debug("camera feed opened", "session_id", s.id,
		"facing", s.opts.Constraints.Facing,
		"ideal_width", s.opts.Constraints.Width,
		"ideal_height", s.opts.Constraints.Height)
}

// Err returns the camera failure recorded by Start, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startErr
}

// Active reports whether the session holds an open camera feed.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed != nil
}

// Capture takes the current frame, stamps it with the wall-clock time, encodes it, and
// appends it. It reports false without error when there is no feed or the feed has no
// usable frame yet. Captures are serialized, so each successful call appends one image.
func (s *Session) Capture(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captureLocked(ctx)
}

// CaptureFrame pushes frame into the feed and captures it in one step, so concurrent
// requests each store the frame they delivered. Feeds that do not accept pushed frames
// return ErrNotPushable.
func (s *Session) CaptureFrame(ctx context.Context, frame image.Image) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrSessionClosed
	}
	sink, ok := s.feed.(camera.FrameSink)
	if !ok {
		return false, ErrNotPushable
	}
	if err := sink.Push(frame); err != nil {
		return false, fmt.Errorf("failed to push frame: %w", err)
	}
	return s.captureLocked(ctx)
}

// captureLocked expects s.mu to be held.
func (s *Session) captureLocked(ctx context.Context) (bool, error) {
	if s.closed || s.feed == nil {
		return false, nil
	}

	frame, err := s.feed.Frame(ctx)
	if errors.Is(err, camera.ErrNoFrame) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read camera frame: %w", err)
	}
	if frame == nil || frame.Bounds().Empty() {
		slog.Debug("ignoring zero-sized frame", "session_id", s.id)
		return false, nil
	}

	processed, err := s.opts.Pipeline.Execute(frame)
	if err != nil {
		return false, err
	}

	capturedAt := s.opts.Now().In(s.opts.Location).Format(s.opts.TimestampFormat)
	encoded, err := imaging.EncodeJPEG(imaging.Stamp(processed, capturedAt), s.opts.JPEGQuality)
	if err != nil {
		return false, err
	}

	s.images = append(s.images, CapturedImage{
		Data:       imaging.DataURI(imaging.MimeJPEG, encoded),
		CapturedAt: capturedAt,
	})
	slog.Info("photo captured", "session_id", s.id, "count", len(s.images), "size_bytes", len(encoded))
	return true, nil
}

// Remove deletes the image at index. Out-of-range indexes are ignored.
func (s *Session) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.images) {
		return false
	}
	s.images = append(s.images[:index:index], s.images[index+1:]...)
	return true
}

// Images returns a copy of the captured images in capture order.
func (s *Session) Images() []CapturedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CapturedImage(nil), s.images...)
}

// Submit validates the submission and writes the folder. A rejected submission leaves
// the store untouched. A successful one closes the session.
func (s *Session) Submit(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if !s.opts.Policy.Valid(s.linkPath) || name == "" || len(s.images) == 0 {
		s.mu.Unlock()
		slog.Warn("folder submission rejected", "session_id", s.id, "link", s.linkPath,
			"name_empty", name == "", "image_count", len(s.images))
		return ErrInvalidSubmission
	}

	uris := make([]string, len(s.images))
	for i, img := range s.images {
		uris[i] = img.Data
	}
	err := s.store.Save(ctx, name, uris)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to submit folder %s: %w", name, err)
	}

	return s.Close()
}

// Close stops every track of the camera feed. It is safe to call from any exit path and
// any number of times; the feed is stopped once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		if s.feed != nil {
			s.closeErr = s.feed.Stop()
			s.feed = nil
		}
		slog.Debug("capture session closed", "session_id", s.id)
	})
	return s.closeErr
}
