package core

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/jo-hoe/snapfolder/internal/camera"
	"github.com/jo-hoe/snapfolder/internal/capture"
	"github.com/jo-hoe/snapfolder/internal/folder"
	"github.com/jo-hoe/snapfolder/internal/imaging"
	"github.com/jo-hoe/snapfolder/internal/kvstore"
	"github.com/jo-hoe/snapfolder/internal/link"
	"github.com/jo-hoe/snapfolder/internal/processing"
)

const reapInterval = time.Minute

// CoreService wires the folder store, the camera source, and the capture sessions
// behind the operations the HTTP layers and the CLI use.
type CoreService struct {
	config   *ServiceConfig
	kv       kvstore.KeyValueStore
	folders  *folder.Store
	sessions *capture.Manager

	stopReaper context.CancelFunc
}

// NewCoreService builds the service from configuration. Backends that cannot be reached
// are reported as errors.
func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	kv, err := kvstore.NewKeyValueStore(config.Storage.Type, config.Storage.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	source, err := camera.NewCameraSource(config.Camera.Source, config.Camera.Directory, decodeFrame)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to initialize camera: %w", err)
	}

	options, err := captureOptions(config)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	return NewCoreServiceWith(config, kv, source, options), nil
}

// NewCoreServiceWith assembles the service from already constructed dependencies.
func NewCoreServiceWith(config *ServiceConfig, kv kvstore.KeyValueStore, source camera.CameraSource, options capture.Options) *CoreService {
	folders := folder.NewStore(kv, config.Storage.Key)
	sessions := capture.NewManager(source, folders, options, config.Capture.SessionIdleTime)

	ctx, cancel := context.WithCancel(context.Background())
	go sessions.Run(ctx, reapInterval)

	slog.Info("core service initialized",
		"storage", config.Storage.Type,
		"camera", config.Camera.Source,
		"link_policy", config.LinkPolicy)
	return &CoreService{
		config:     config,
		kv:         kv,
		folders:    folders,
		sessions:   sessions,
		stopReaper: cancel,
	}
}

func captureOptions(config *ServiceConfig) (capture.Options, error) {
	policy, err := link.NewPolicy(config.LinkPolicy)
	if err != nil {
		return capture.Options{}, err
	}
	location, err := time.LoadLocation(config.Capture.Timezone)
	if err != nil {
		return capture.Options{}, fmt.Errorf("invalid timezone %q: %w", config.Capture.Timezone, err)
	}
	pipeline, err := processing.NewCommandInvokerFromConfig(processing.DefaultRegistry, config.Capture.Commands)
	if err != nil {
		return capture.Options{}, fmt.Errorf("invalid capture commands: %w", err)
	}

	return capture.Options{
		Constraints: camera.Constraints{
			Facing: camera.Facing(config.Camera.Facing),
			Width:  config.Camera.Width,
			Height: config.Camera.Height,
		},
		Pipeline:        pipeline,
		Policy:          policy,
		TimestampFormat: config.Capture.TimestampFormat,
		Location:        location,
		JPEGQuality:     config.Capture.JPEGQuality,
	}, nil
}

func decodeFrame(data []byte) (image.Image, error) {
	img, _, err := imaging.Decode(data)
	return img, err
}

func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

// Folders returns the full folder mapping.
func (service *CoreService) Folders(ctx context.Context) folder.Folders {
	return service.folders.GetAll(ctx)
}

func (service *CoreService) FolderNames(ctx context.Context) []string {
	return service.folders.Names(ctx)
}

func (service *CoreService) Folder(ctx context.Context, name string) ([]string, bool) {
	return service.folders.Get(ctx, name)
}

// SaveFolder writes a folder directly, bypassing the capture flow.
func (service *CoreService) SaveFolder(ctx context.Context, name string, images []string) error {
	return service.folders.Save(ctx, name, images)
}

// GenerateLink returns a new shareable capture link rooted at origin. The configured
// public origin takes precedence when set.
func (service *CoreService) GenerateLink(origin string) (string, error) {
	if service.config.PublicOrigin != "" {
		origin = service.config.PublicOrigin
	}
	return link.Generate(origin)
}

// OpenSession starts a capture session for a link id.
func (service *CoreService) OpenSession(ctx context.Context, linkID string) *capture.Session {
	return service.sessions.Open(ctx, linkID)
}

func (service *CoreService) Session(id string) (*capture.Session, bool) {
	return service.sessions.Get(id)
}

// CloseSession tears a session down and releases its camera.
func (service *CoreService) CloseSession(id string) bool {
	return service.sessions.Close(id)
}

// Thumbnail returns a JPEG thumbnail of the folder's first image, or the placeholder
// PNG when the folder is missing or its first image cannot be decoded.
func (service *CoreService) Thumbnail(ctx context.Context, name string) ([]byte, string, error) {
	width := service.config.ThumbnailWidth
	images, ok := service.folders.Get(ctx, name)
	if ok && len(images) > 0 {
		if _, data, err := imaging.ParseDataURI(images[0]); err == nil {
			if thumb, err := imaging.Thumbnail(data, width); err == nil {
				return thumb, imaging.MimeJPEG, nil
			}
		}
		slog.Debug("falling back to placeholder thumbnail", "folder", name)
	}

	placeholder, err := imaging.Placeholder(width)
	if err != nil {
		return nil, "", err
	}
	return placeholder, imaging.MimePNG, nil
}

// Close ends all capture sessions and closes the storage backend.
func (service *CoreService) Close() error {
	service.stopReaper()
	service.sessions.CloseAll()
	return service.kv.Close()
}
