package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/parser"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("file not found")

// IndexFileName is the sidecar file that keeps document names across restarts.
const IndexFileName = "index.json"

type indexEntry struct {
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SortOrder selects how List orders documents.
type SortOrder string

const (
	SortRecent SortOrder = "recent" // most recently saved first
	SortName   SortOrder = "name"   // case-insensitive name, ascending
	SortDate   SortOrder = "date"   // most recently modified first
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to SortRecent.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(s)) {
	case SortName:
		return SortName
	case SortDate:
		return SortDate
	default:
		return SortRecent
	}
}

// Store defines the interface for path document storage.
type Store interface {
	FileSystem
	Save(name string, data models.PathData) (*models.FileInfo, error)
	Update(id string, data models.PathData) (*models.FileInfo, error)
	Get(id string) (*models.FileInfo, error)
	Load(id string) (*models.PathData, error)
	List(order SortOrder, limit int) ([]*models.FileInfo, error)
	Delete(id string) error
	Rename(id string, newName string) (*models.FileInfo, error)
	GetFilePath(id string) (string, error)
}

// LocalStore implements Store using the local filesystem.
type LocalStore struct {
	OSFileSystem

	mu       sync.RWMutex
	pathsDir string
	files    map[string]*models.FileInfo
}

// NewLocalStore creates a new LocalStore rooted at pathsDir.
func NewLocalStore(pathsDir string) (*LocalStore, error) {
	if err := os.MkdirAll(pathsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating paths directory: %w", err)
	}

	s := &LocalStore{
		pathsDir: pathsDir,
		files:    make(map[string]*models.FileInfo),
	}
	if err := s.reindex(); err != nil {
		return nil, err
	}
	return s, nil
}

// reindex registers documents already present in the directory. Names come
// from the index file; documents missing from it are named after their file.
func (s *LocalStore) reindex() error {
	index, err := s.readIndex()
	if err != nil {
		return err
	}
	entries, err := s.ListFiles(s.pathsDir)
	if err != nil {
		return fmt.Errorf("indexing paths directory: %w", err)
	}
	for _, e := range entries {
		fi, err := os.Stat(e.Path)
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
		info := &models.FileInfo{
			ID:         id,
			Name:       id,
			Path:       e.Path,
			Size:       fi.Size(),
			UploadedAt: fi.ModTime(),
			ModifiedAt: fi.ModTime(),
		}
		if entry, ok := index[id]; ok {
			info.Name = entry.Name
			info.UploadedAt = entry.UploadedAt
		}
		s.files[id] = info
	}
	return nil
}

func (s *LocalStore) indexPath() string {
	return filepath.Join(s.pathsDir, IndexFileName)
}

func (s *LocalStore) readIndex() (map[string]indexEntry, error) {
	raw, err := os.ReadFile(s.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]indexEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	index := make(map[string]indexEntry)
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	return index, nil
}

// writeIndex persists names and upload times. Callers hold s.mu.
func (s *LocalStore) writeIndex() error {
	index := make(map[string]indexEntry, len(s.files))
	for id, info := range s.files {
		index[id] = indexEntry{Name: info.Name, UploadedAt: info.UploadedAt}
	}
	raw, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(s.indexPath(), raw, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// Dir returns the directory documents are stored in.
func (s *LocalStore) Dir() string {
	return s.pathsDir
}

// Save writes a new document and returns its metadata.
func (s *LocalStore) Save(name string, data models.PathData) (*models.FileInfo, error) {
	id := uuid.New().String()
	path := filepath.Join(s.pathsDir, id+parser.PathFileExt)

	size, err := writeDocument(path, data)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	info := &models.FileInfo{
		ID:         id,
		Name:       name,
		Path:       path,
		Size:       size,
		UploadedAt: now,
		ModifiedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = info
	if err := s.writeIndex(); err != nil {
		return nil, err
	}

	return info, nil
}

// Update overwrites an existing document.
func (s *LocalStore) Update(id string, data models.PathData) (*models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	size, err := writeDocument(info.Path, data)
	if err != nil {
		return nil, err
	}
	info.Size = size
	info.ModifiedAt = time.Now()

	return info, nil
}

func writeDocument(path string, data models.PathData) (int64, error) {
	var buf bytes.Buffer
	if err := parser.EncodePathData(&buf, data); err != nil {
		return 0, fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("writing file: %w", err)
	}
	return int64(buf.Len()), nil
}

// Get retrieves file metadata by ID.
func (s *LocalStore) Get(id string) (*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return info, nil
}

// Load reads and decodes a stored document.
func (s *LocalStore) Load(id string) (*models.PathData, error) {
	path, err := s.GetFilePath(id)
	if err != nil {
		return nil, err
	}
	return parser.ParsePathFile(path)
}

// List returns up to limit documents in the requested order. A limit of zero
// or less returns everything.
func (s *LocalStore) List(order SortOrder, limit int) ([]*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.FileInfo, 0, len(s.files))
	for _, info := range s.files {
		list = append(list, info)
	}

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch order {
		case SortName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
			return a.ID < b.ID
		case SortDate:
			if !a.ModifiedAt.Equal(b.ModifiedAt) {
				return a.ModifiedAt.After(b.ModifiedAt)
			}
			return a.ID < b.ID
		default:
			if !a.UploadedAt.Equal(b.UploadedAt) {
				return a.UploadedAt.After(b.UploadedAt)
			}
			return a.ID < b.ID
		}
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes a document from storage.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, id)
	return s.writeIndex()
}

// Rename updates the display name of a document.
func (s *LocalStore) Rename(id string, newName string) (*models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	oldName := info.Name
	info.Name = newName
	if err := s.writeIndex(); err != nil {
		info.Name = oldName
		return nil, err
	}
	return info, nil
}

// GetFilePath returns the absolute path to a document.
func (s *LocalStore) GetFilePath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return info.Path, nil
}
