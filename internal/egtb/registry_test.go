package egtb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryAddFoldersAndLookup(t *testing.T) {
	dir := t.TempDir()
	writeUncompressedFile(t, dir, "KK.egtb", "kk", nil)
	writeUncompressedFile(t, dir, "KQKR.egtb", "kqkr", nil)
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a table"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewRegistry(MemSmart)
	n, err := r.AddFolders(dir)
	if err != nil {
		t.Fatalf("AddFolders: %v", err)
	}
	if n != 2 {
		t.Fatalf("AddFolders added %d files, want 2", n)
	}
	if r.GetSize() != 2 {
		t.Fatalf("GetSize() = %d, want 2", r.GetSize())
	}

	if r.Lookup("kk") == nil {
		t.Fatal("expected to find file registered for signature kk (case-insensitive)")
	}
	if r.Lookup("kqkr") == nil {
		t.Fatal("expected to find file registered for signature kqkr")
	}
	if r.Lookup("kbkn") != nil {
		t.Fatal("did not expect a file for an unregistered signature")
	}
}

func TestRegistryAddFoldersIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeUncompressedFile(t, dir, "KK.egtb", "kk", nil)

	r := NewRegistry(MemSmart)
	if _, err := r.AddFolders(dir); err != nil {
		t.Fatalf("AddFolders: %v", err)
	}
	n, err := r.AddFolders(dir)
	if err != nil {
		t.Fatalf("AddFolders (second call): %v", err)
	}
	if n != 0 {
		t.Fatalf("second AddFolders call re-added %d files, want 0", n)
	}
}

func TestRegistryPreloadLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeUncompressedFile(t, dir, "KK.egtb", "kk", nil)

	r := NewRegistry(MemAll)
	if _, err := r.AddFolders(dir); err != nil {
		t.Fatalf("AddFolders: %v", err)
	}
	if err := r.Preload(MemAll, LoadAll); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	f := r.Lookup("kk")
	if f.Size() == 0 {
		t.Fatal("expected header/layout to be loaded after Preload(LoadAll)")
	}
}

func TestKnownExtension(t *testing.T) {
	cases := map[string]bool{
		"kqkr.egtb":  true,
		"kqkr.egtbc": true,
		"KQKR.EGTB":  true,
		"readme.txt": false,
		"kk":         false,
	}
	for name, want := range cases {
		if got := KnownExtension(name); got != want {
			t.Errorf("KnownExtension(%q) = %v, want %v", name, got, want)
		}
	}
}
