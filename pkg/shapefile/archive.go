package shapefile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Archive bundles a written file set into a zip archive in memory, ready
// for artifact upload. Entries are stored under the base name without
// directory components.
func Archive(fs *FileSet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, path := range fs.Paths {
		f, err := os.Open(path)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		entry, err := zw.Create(filepath.Base(path))
		if err != nil {
			f.Close()
			zw.Close()
			return nil, fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			zw.Close()
			return nil, fmt.Errorf("failed to write archive entry: %w", err)
		}
		f.Close()
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
