package capture

import (
	"image"
	"testing"

	"github.com/jo-hoe/snapfolder/internal/imaging"
)

func mustJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	data, err := imaging.EncodeJPEG(image.NewRGBA(image.Rect(0, 0, w, h)), 0)
	if err != nil {
		t.Fatalf("EncodeJPEG error: %v", err)
	}
	return data
}
