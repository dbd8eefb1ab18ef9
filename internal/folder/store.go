package folder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jo-hoe/snapfolder/internal/kvstore"
)

// DefaultKey is the namespaced key holding the serialized folder mapping.
const DefaultKey = "folders"

// ErrInvalidFolder is returned by Save when the name or the image list is empty.
var ErrInvalidFolder = errors.New("folder name and images must not be empty")

// Folders maps a folder name to its ordered image URIs.
type Folders map[string][]string

// Store persists every folder as one JSON object under a single key. Writes replace the
// whole value, so a concurrent reader sees either the old or the new mapping.
type Store struct {
	kv  kvstore.KeyValueStore
	key string
	mu  sync.Mutex
}

func NewStore(kv kvstore.KeyValueStore, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// GetAll returns the full mapping. Missing, unreadable, or malformed data yields an
// empty mapping.
func (s *Store) GetAll(ctx context.Context) Folders {
	return s.load(ctx)
}

// Get returns the images of a single folder.
func (s *Store) Get(ctx context.Context, name string) ([]string, bool) {
	images, ok := s.load(ctx)[name]
	return images, ok
}

// Names returns all folder names in ascending order.
func (s *Store) Names(ctx context.Context) []string {
	folders := s.load(ctx)
	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save overwrites the entry for name and persists the full mapping immediately.
func (s *Store) Save(ctx context.Context, name string, images []string) error {
	if strings.TrimSpace(name) == "" || len(images) == 0 {
		return ErrInvalidFolder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders := s.load(ctx)
	folders[name] = append([]string(nil), images...)

	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("failed to serialize folders: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist folder %s: %w", name, err)
	}

	slog.Info("folder saved", "folder", name, "image_count", len(images))
	return nil
}

func (s *Store) load(ctx context.Context) Folders {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		slog.Warn("failed to read folders; treating as empty", "key", s.key, "error", err)
		return Folders{}
	}
	if !found || raw == "" {
		return Folders{}
	}

	var folders Folders
	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		slog.Warn("stored folders are malformed; treating as empty", "key", s.key, "error", err)
		return Folders{}
	}
	if folders == nil {
		// the literal "null" decodes without error
		return Folders{}
	}
	return folders
}
