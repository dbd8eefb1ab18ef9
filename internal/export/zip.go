package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/jo-hoe/snapfolder/internal/imaging"
)

// WriteZip writes the images of a folder as a zip archive to w. Entries are stored under
// "<name>/" as "<n><ext>", numbered from 1 in folder order. Images that are not decodable
// data URIs are skipped and do not consume a number. It returns the number of entries written.
func WriteZip(w io.Writer, name string, images []string) (int, error) {
	archive := zip.NewWriter(w)
	dir := entryDir(name)

	written := 0
	for i, uri := range images {
		mimeType, data, err := imaging.ParseDataURI(uri)
		if err != nil {
			slog.Warn("skipping image that is not a data uri", "folder", name, "index", i, "error", err)
			continue
		}

		entryName := path.Join(dir, fmt.Sprintf("%d%s", written+1, imaging.Extension(mimeType)))
		entry, err := archive.Create(entryName)
		if err != nil {
			return written, fmt.Errorf("failed to create zip entry %s: %w", entryName, err)
		}
		if _, err := entry.Write(data); err != nil {
			return written, fmt.Errorf("failed to write zip entry %s: %w", entryName, err)
		}
		written++
	}

	if err := archive.Close(); err != nil {
		return written, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return written, nil
}

// FileName returns the download name of a folder archive.
func FileName(name string) string {
	return entryDir(name) + ".zip"
}

// entryDir keeps folder names from escaping the archive root.
func entryDir(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "folder"
	}
	return cleaned
}
