// mock_storage.go - In-memory storage and file system mocks for testing
package testutil

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/storage"
)

// MockFileSystem implements storage.FileSystem over an in-memory tree of
// "dir/name" paths.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]string
	failures map[string]error

	active    atomic.Int32
	maxActive atomic.Int32
	Delay     time.Duration
}

// NewMockFileSystem creates an empty mock file system.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string]string),
		failures: make(map[string]error),
	}
}

// AddFile stores content at p.
func (m *MockFileSystem) AddFile(p string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = content
}

// FailRead makes ReadFile(p) return err. The file is still listed.
func (m *MockFileSystem) FailRead(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[p]; !ok {
		m.files[p] = ""
	}
	m.failures[p] = err
}

// MaxConcurrentReads reports the highest number of overlapping ReadFile calls.
func (m *MockFileSystem) MaxConcurrentReads() int {
	return int(m.maxActive.Load())
}

func (m *MockFileSystem) ListFiles(directory string) ([]models.FileEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.FileEntry
	found := false
	for p := range m.files {
		if path.Dir(p) != directory {
			continue
		}
		found = true
		if strings.EqualFold(path.Ext(p), ".pp") {
			out = append(out, models.FileEntry{Name: path.Base(p), Path: p})
		}
	}
	if !found {
		return nil, fmt.Errorf("directory not found: %s", directory)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockFileSystem) ReadFile(p string) (string, error) {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		cur := m.maxActive.Load()
		if n <= cur || m.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.failures[p]; ok {
		return "", err
	}
	content, ok := m.files[p]
	if !ok {
		return "", storage.ErrNotFound
	}
	return content, nil
}

var _ storage.FileSystem = (*MockFileSystem)(nil)

// MockStorage implements storage.Store in memory.
type MockStorage struct {
	*MockFileSystem

	mu    sync.RWMutex
	files map[string]*models.FileInfo
	docs  map[string]models.PathData
}

// NewMockStorage creates a new empty mock store.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		MockFileSystem: NewMockFileSystem(),
		files:          make(map[string]*models.FileInfo),
		docs:           make(map[string]models.PathData),
	}
}

func (m *MockStorage) Save(name string, data models.PathData) (*models.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateTestID()
	now := time.Now()
	file := &models.FileInfo{
		ID:         id,
		Name:       name,
		Path:       "/mock/paths/" + id + ".pp",
		UploadedAt: now,
		ModifiedAt: now,
	}
	m.files[id] = file
	m.docs[id] = data.Clone()
	return file, nil
}

func (m *MockStorage) Update(id string, data models.PathData) (*models.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	file.ModifiedAt = time.Now()
	m.docs[id] = data.Clone()
	return file, nil
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return file, nil
}

func (m *MockStorage) Load(id string) (*models.PathData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := doc.Clone()
	return &out, nil
}

func (m *MockStorage) List(order storage.SortOrder, limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []*models.FileInfo
	for _, file := range m.files {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[id]; !exists {
		return storage.ErrNotFound
	}

	delete(m.files, id)
	delete(m.docs, id)
	return nil
}

func (m *MockStorage) Rename(id string, newName string) (*models.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	file.Name = newName
	return file, nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return "", storage.ErrNotFound
	}
	return file.Path, nil
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// GetFileCount returns the number of stored documents
func (m *MockStorage) GetFileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// generateTestID generates a simple test ID
var testIDCounter int
var testIDMutex sync.Mutex

func generateTestID() string {
	testIDMutex.Lock()
	defer testIDMutex.Unlock()
	testIDCounter++
	return fmt.Sprintf("test-id-%d", testIDCounter)
}
