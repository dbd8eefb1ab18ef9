package capture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jo-hoe/snapfolder/internal/camera"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(t *testing.T, source camera.CameraSource, idle time.Duration) (*Manager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: fixedNow}
	opts := testOptions()
	opts.Now = clock.Now
	manager := NewManager(source, newRecordingSaver(), opts, idle)
	t.Cleanup(manager.CloseAll)
	return manager, clock
}

func TestManager_OpenGetClose(t *testing.T) {
	source := &fakeSource{width: 4, height: 4}
	manager, _ := newTestManager(t, source, 0)

	session := manager.Open(context.Background(), "abc123xyz")
	if session.LinkPath() != "/create/abc123xyz" {
		t.Errorf("unexpected link path %q", session.LinkPath())
	}
	if !session.Active() {
		t.Error("expected session camera to be active")
	}

	got, ok := manager.Get(session.ID())
	if !ok || got != session {
		t.Fatal("expected Get to return the opened session")
	}

	if !manager.Close(session.ID()) {
		t.Fatal("expected Close to report a known session")
	}
	if manager.Close(session.ID()) {
		t.Error("expected second Close to report an unknown session")
	}
	if _, ok := manager.Get(session.ID()); ok {
		t.Error("expected session to be forgotten")
	}
	if source.feeds[0].stopCount() != 1 {
		t.Errorf("expected 1 stop, got %d", source.feeds[0].stopCount())
	}
}

func TestManager_SessionIDsAreUnique(t *testing.T) {
	manager, _ := newTestManager(t, &fakeSource{width: 4, height: 4}, 0)

	first := manager.Open(context.Background(), "same")
	second := manager.Open(context.Background(), "same")
	if first.ID() == second.ID() {
		t.Fatal("expected distinct session ids for the same link")
	}
	if manager.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", manager.Len())
	}
}

func TestManager_ReapIdleSessions(t *testing.T) {
	source := &fakeSource{width: 4, height: 4}
	manager, clock := newTestManager(t, source, 10*time.Minute)

	idle := manager.Open(context.Background(), "idle")
	busy := manager.Open(context.Background(), "busy")

	clock.Advance(6 * time.Minute)
	manager.Get(busy.ID())
	clock.Advance(6 * time.Minute)

	if closed := manager.Reap(); closed != 1 {
		t.Fatalf("expected 1 reaped session, got %d", closed)
	}
	if _, ok := manager.Get(idle.ID()); ok {
		t.Error("expected idle session to be reaped")
	}
	if _, ok := manager.Get(busy.ID()); !ok {
		t.Error("expected busy session to survive")
	}
	if idle.Active() {
		t.Error("expected reaped session camera to be stopped")
	}
}

func TestManager_ReapDisabled(t *testing.T) {
	manager, clock := newTestManager(t, &fakeSource{width: 4, height: 4}, 0)
	manager.Open(context.Background(), "x")
	clock.Advance(24 * time.Hour)
	if closed := manager.Reap(); closed != 0 {
		t.Errorf("expected no reaping when disabled, got %d", closed)
	}
}

func TestManager_CloseAll(t *testing.T) {
	source := &fakeSource{width: 4, height: 4}
	manager, _ := newTestManager(t, source, 0)
	for _, id := range []string{"a", "b", "c"} {
		manager.Open(context.Background(), id)
	}

	manager.CloseAll()

	if manager.Len() != 0 {
		t.Errorf("expected no sessions, got %d", manager.Len())
	}
	for i, feed := range source.feeds {
		if feed.stopCount() != 1 {
			t.Errorf("feed %d: expected 1 stop, got %d", i, feed.stopCount())
		}
	}
}

func TestManager_RunStopsWithContext(t *testing.T) {
	manager, _ := newTestManager(t, &fakeSource{width: 4, height: 4}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
