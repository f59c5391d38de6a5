package contacts

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestEmbeddedDefaults(t *testing.T) {
	// Verify that every shipped default file is present and non-empty.
	for _, name := range []string{ViewerFile, SeedFile, ProfileFile} {
		data, err := fs.ReadFile(Defaults, name)
		if err != nil {
			t.Fatalf("reading embedded %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("embedded %s is empty", name)
		}
	}
}

func TestOverlayFS_EmbeddedOnly(t *testing.T) {
	// Given: an embedded FS with a file and a local dir without it
	embedded := fstest.MapFS{
		"viewer.json": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir() // empty

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "viewer.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: embedded content is returned
	if string(data) != "from embedded" {
		t.Errorf("got %q, want %q", string(data), "from embedded")
	}
}

func TestOverlayFS_LocalOverride(t *testing.T) {
	// Given: both local and embedded have the same file
	embedded := fstest.MapFS{
		"viewer.json": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(localDir, "viewer.json"), []byte("from local"), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "viewer.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: local file takes precedence
	if string(data) != "from local" {
		t.Errorf("got %q, want %q", string(data), "from local")
	}
}

func TestOverlayFS_EmptyLocalDir(t *testing.T) {
	// Given: no local directory configured
	embedded := fstest.MapFS{
		"a.txt": &fstest.MapFile{Data: []byte("embedded-a")},
	}

	// When: reading through the overlay
	data, err := fs.ReadFile(OverlayFS("", embedded), "a.txt")

	// Then: the embedded file is served
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "embedded-a" {
		t.Errorf("got %q, want %q", string(data), "embedded-a")
	}
}

func TestOverlayFS_NotFound(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	if _, err := fs.ReadFile(ofs, "missing.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOverlayFS_RejectsInvalidPath(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	for _, name := range []string{"../escape", "/absolute", "bad\\slash"} {
		if _, err := ofs.Open(name); err == nil {
			t.Errorf("Open(%q) should return error", name)
		}
	}
}
