package main

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestRunServer_ReturnsWhenPortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = listener.Close() }()

	done := make(chan error, 1)
	go func() {
		done <- runServer(defineServer(), listener.Addr().String(), make(chan os.Signal))
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error for an occupied port")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServer kept blocking after the listener failed")
	}
}

func TestRunServer_StopsOnSignal(t *testing.T) {
	quit := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- runServer(defineServer(), "127.0.0.1:0", quit)
	}()

	quit <- syscall.SIGTERM
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("runServer did not stop after the signal")
	}
}

func TestDefineServer_Probe(t *testing.T) {
	rec := httptest.NewRecorder()
	defineServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
