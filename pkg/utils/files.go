package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FindFilesByExtension returns the regular files directly inside dir whose
// names end with extension, in directory order.
func FindFilesByExtension(fs afero.Fs, dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), extension) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// WriteFile creates the parent directories of path and writes data to it.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// ModTime returns the modification time of path, zero if it cannot be read.
func ModTime(fs afero.Fs, path string) (t time.Time) {
	info, err := fs.Stat(path)
	if err != nil {
		return t
	}
	return info.ModTime()
}
