// Package storage persists path documents and exposes the file access
// collaborator used by directory scans.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/parser"
)

// FileSystem is the file access collaborator: list a directory's path
// documents and read a file's contents.
type FileSystem interface {
	ListFiles(directory string) ([]models.FileEntry, error)
	ReadFile(path string) (string, error)
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

// ListFiles returns the .pp files directly inside directory, sorted by name.
func (OSFileSystem) ListFiles(directory string) ([]models.FileEntry, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", directory, err)
	}

	files := make([]models.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), parser.PathFileExt) {
			continue
		}
		files = append(files, models.FileEntry{
			Name: e.Name(),
			Path: filepath.Join(directory, e.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadFile returns the contents of path.
func (OSFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
