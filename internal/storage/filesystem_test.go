package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.pp":      `{"lines": []}`,
		"a.PP":      `{}`,
		"notes.txt": "ignore me",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.pp"), 0755); err != nil {
		t.Fatal(err)
	}

	fs := OSFileSystem{}

	t.Run("lists path documents only", func(t *testing.T) {
		files, err := fs.ListFiles(dir)
		if err != nil {
			t.Fatalf("ListFiles failed: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("Expected 2 files, got %d: %+v", len(files), files)
		}
		if files[0].Name != "a.PP" || files[1].Name != "b.pp" {
			t.Errorf("Unexpected order: %+v", files)
		}
		if files[1].Path != filepath.Join(dir, "b.pp") {
			t.Errorf("Unexpected path: %s", files[1].Path)
		}
	})

	t.Run("reads contents", func(t *testing.T) {
		content, err := fs.ReadFile(filepath.Join(dir, "b.pp"))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if content != `{"lines": []}` {
			t.Errorf("Unexpected content: %s", content)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := fs.ListFiles(filepath.Join(dir, "nope")); err == nil {
			t.Error("Expected error for missing directory")
		}
	})
}
