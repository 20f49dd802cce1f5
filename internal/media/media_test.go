package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	rel, err := store.Save("goods_images", []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(rel, "goods_images/") || !strings.HasSuffix(rel, ".jpg") {
		t.Errorf("unexpected relative path: %s", rel)
	}

	data, err := os.ReadFile(filepath.Join(store.dir, rel))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("unexpected file content: %q", data)
	}

	if err := store.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, rel)); !os.IsNotExist(err) {
		t.Error("expected file to be gone after Remove")
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Remove("goods_images/gone.jpg"); err != nil {
		t.Errorf("Remove of missing file: %v", err)
	}
}

func TestRemoveRejectsEscapingPaths(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Remove("../etc/passwd"); err == nil {
		t.Error("expected error for path escaping the media dir")
	}
}

func TestURL(t *testing.T) {
	if got := URL("goods_images/a.jpg"); got != "/media/goods_images/a.jpg" {
		t.Errorf("URL: got %s", got)
	}
}
