package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetPreservesInsertionOrder(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "env.conf"))
	s.Set("MINGW_ROOT", "/c/msys64")
	s.Set("PKG_CONFIG_PATH", "/c/msys64/mingw64/lib/pkgconfig")
	s.Set("GI_TYPELIB_PATH", "/c/msys64/mingw64/lib/girepository-1.0")

	// Overwriting must not change position.
	s.Set("MINGW_ROOT", "/c/other")

	want := []string{"MINGW_ROOT", "PKG_CONFIG_PATH", "GI_TYPELIB_PATH"}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v, _ := s.Get("MINGW_ROOT"); v != "/c/other" {
		t.Errorf("Get(MINGW_ROOT) = %q, want %q", v, "/c/other")
	}
}

func TestSaveRewritesWithoutDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.conf")

	s := New(path)
	s.Set("MINGW_ROOT", "/c/msys64")
	s.Set("LD_LIBRARY_PATH", "/c/msys64/mingw64/lib")
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// A second run with a changed value must replace the line, not append.
	s2, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s2.Set("MINGW_ROOT", "/d/msys64")
	if err := s2.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	content := string(data)
	if strings.Count(content, "MINGW_ROOT=") != 1 {
		t.Errorf("expected exactly one MINGW_ROOT line, got:\n%s", content)
	}
	if !strings.Contains(content, "MINGW_ROOT=/d/msys64") {
		t.Errorf("expected updated value, got:\n%s", content)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d:\n%s", len(lines), content)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.conf")

	s := New(path)
	s.Set("PKG_CONFIG_PATH", "/c/msys64/mingw64/lib/pkgconfig")
	s.Set("PYTHONPATH", "/c/msys64/mingw64/lib/python3.12/site-packages")
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", loaded.Len())
	}
	for _, key := range s.Keys() {
		want, _ := s.Get(key)
		got, ok := loaded.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %q, %v; want %q, true", key, got, ok, want)
		}
	}
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.conf")
	content := "# written by devbootstrap\n\nMINGW_ROOT=/c/msys64\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
	if err == nil {
		t.Fatal("Load() on missing file: expected error, got nil")
	}
}

func TestLoadMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.conf")
	if err := os.WriteFile(path, []byte("NOT A PAIR\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() on malformed file: expected error, got nil")
	}
}
