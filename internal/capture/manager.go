package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jo-hoe/snapfolder/internal/camera"
	"github.com/jo-hoe/snapfolder/internal/link"
)

type managedSession struct {
	session  *Session
	lastUsed time.Time
}

// Manager tracks the open capture sessions of all browser tabs. A session ends when
// its page asks for teardown, when it is submitted, when it idles past the timeout, or
// when the manager shuts down.
type Manager struct {
	source      camera.CameraSource
	store       FolderSaver
	opts        Options
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*managedSession
}

func NewManager(source camera.CameraSource, store FolderSaver, opts Options, idleTimeout time.Duration) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		source:      source,
		store:       store,
		opts:        opts,
		idleTimeout: idleTimeout,
		now:         now,
		sessions:    make(map[string]*managedSession),
	}
}

// Open creates and starts a session for a capture link.
func (m *Manager) Open(ctx context.Context, linkID string) *Session {
	session := NewSession(uuid.NewString(), link.CreatePath(linkID), m.source, m.store, m.opts)
	session.Start(ctx)

	m.mu.Lock()
	m.sessions[session.ID()] = &managedSession{session: session, lastUsed: m.now()}
	count := len(m.sessions)
	m.mu.Unlock()

	slog.Info("capture session opened", "session_id", session.ID(), "link", session.LinkPath(),
		"camera_active", session.Active(), "open_sessions", count)
	return session
}

// Get returns a session and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastUsed = m.now()
	return entry.session, true
}

// Close ends a session and forgets it. It reports whether the session was known.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	if err := entry.session.Close(); err != nil {
		slog.Warn("failed to stop camera feed", "session_id", id, "error", err)
	}
	return true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the idle timeout and returns how many
// were closed. A non-positive timeout disables reaping.
func (m *Manager) Reap() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTimeout)

	var expired []string
	m.mu.Lock()
	for id, entry := range m.sessions {
		if entry.lastUsed.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	closed := 0
	for _, id := range expired {
		if m.Close(id) {
			closed++
			slog.Info("closed idle capture session", "session_id", id)
		}
	}
	return closed
}

// Run reaps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.idleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap()
		}
	}
}

// CloseAll ends every open session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Close(id)
	}
}
