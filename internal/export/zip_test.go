package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/jo-hoe/snapfolder/internal/imaging"
)

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader error: %v", err)
	}
	entries := make(map[string][]byte)
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("Open %s error: %v", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("ReadAll %s error: %v", file.Name, err)
		}
		entries[file.Name] = content
	}
	return entries
}

func TestWriteZip(t *testing.T) {
	images := []string{
		imaging.DataURI(imaging.MimeJPEG, []byte("first")),
		"https://example.com/remote.jpg",
		imaging.DataURI(imaging.MimePNG, []byte("second")),
	}

	var buf bytes.Buffer
	written, err := WriteZip(&buf, "trip", images)
	if err != nil {
		t.Fatalf("WriteZip error: %v", err)
	}
	if written != 2 {
		t.Fatalf("expected 2 entries, got %d", written)
	}

	entries := readZip(t, buf.Bytes())
	if string(entries["trip/1.jpg"]) != "first" {
		t.Errorf("unexpected trip/1.jpg content: %q", entries["trip/1.jpg"])
	}
	if string(entries["trip/2.png"]) != "second" {
		t.Errorf("unexpected trip/2.png content: %q", entries["trip/2.png"])
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %v", entries)
	}
}

func TestWriteZip_Empty(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteZip(&buf, "empty", nil)
	if err != nil {
		t.Fatalf("WriteZip error: %v", err)
	}
	if written != 0 {
		t.Errorf("expected 0 entries, got %d", written)
	}
	if len(readZip(t, buf.Bytes())) != 0 {
		t.Error("expected an empty archive")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "trip", want: "trip.zip"},
		{name: "../etc/passwd", want: "_etc_passwd.zip"},
		{name: "  ", want: "folder.zip"},
		{name: "a\\b:c", want: "a_b_c.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.name); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
