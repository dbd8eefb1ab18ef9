package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/url"
	"strings"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"

	// DefaultJPEGQuality matches the browser default for canvas JPEG export.
	DefaultJPEGQuality = 92
)

var ErrNotDataURI = errors.New("not a data uri")

var extensions = map[string]string{
	MimeJPEG:     ".jpg",
	MimePNG:      ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

// EncodeJPEG encodes img as JPEG. A quality outside 1-100 falls back to the default.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI builds a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI returns the media type and payload of a data URI. Both base64 and
// percent-encoded payloads are accepted; an omitted media type defaults to text/plain.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrNotDataURI)
	}

	isBase64 := false
	if trimmed, found := strings.CutSuffix(header, ";base64"); found {
		header = trimmed
		isBase64 = true
	}
	mimeType, _, _ := strings.Cut(header, ";")
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		return mimeType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to unescape payload: %w", err)
	}
	return mimeType, []byte(unescaped), nil
}

// Extension returns the file extension for an image media type, or ".bin".
func Extension(mimeType string) string {
	if ext, ok := extensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return ".bin"
}
