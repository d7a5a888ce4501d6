package egtb

import (
	"os"
	"path/filepath"
	"testing"
)

func writeUncompressedFile(t *testing.T, dir, name, sig string, data map[int][]byte) string {
	t.Helper()
	layout, err := ParseLayout(sig, 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	h := NewHeader(sig, 0, true, true, false)
	path := filepath.Join(dir, name)
	buf := h.Marshal()
	for side := 0; side < 2; side++ {
		sideData, ok := data[side]
		if !ok {
			sideData = make([]byte, layout.Size)
			for i := range sideData {
				sideData[i] = cellDraw
			}
		}
		buf = append(buf, sideData...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileGetCellUncompressed(t *testing.T) {
	dir := t.TempDir()
	layout, err := ParseLayout("kk", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	whiteData := make([]byte, layout.Size)
	for i := range whiteData {
		whiteData[i] = scoreToCell(ScoreDraw)
	}
	whiteData[3] = scoreToCell(100)

	path := writeUncompressedFile(t, dir, "kk.egtb", "kk", map[int][]byte{0: whiteData})

	f := NewFile("kk", path, MemAll)
	if got := f.GetCell(3, 0); got != scoreToCell(100) {
		t.Fatalf("GetCell(3,0) = %d, want %d", got, scoreToCell(100))
	}
	if got := f.GetCell(0, 0); got != cellDraw {
		t.Fatalf("GetCell(0,0) = %d, want cellDraw", got)
	}
	if f.Size() != layout.Size {
		t.Fatalf("Size() = %d, want %d", f.Size(), layout.Size)
	}
}

func TestFileGetCellTinyMemMode(t *testing.T) {
	dir := t.TempDir()
	layout, err := ParseLayout("kk", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	whiteData := make([]byte, layout.Size)
	whiteData[len(whiteData)-1] = scoreToCell(-200)

	path := writeUncompressedFile(t, dir, "kk.egtb", "kk", map[int][]byte{0: whiteData})

	f := NewFile("kk", path, MemTiny)
	idx := int64(len(whiteData) - 1)
	if got := f.GetCell(idx, 0); got != scoreToCell(-200) {
		t.Fatalf("GetCell(%d,0) = %d, want %d", idx, got, scoreToCell(-200))
	}
}

func TestFileMissingSideReturnsUnknown(t *testing.T) {
	dir := t.TempDir()
	layout, err := ParseLayout("kk", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	path := filepath.Join(dir, "kk.egtb")
	h := NewHeader("kk", 0, true, false, false)
	buf := h.Marshal()
	buf = append(buf, make([]byte, layout.Size)...)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := NewFile("kk", path, MemAll)
	if got := f.GetCell(0, 1); got != cellUnknown {
		t.Fatalf("GetCell on absent side = %d, want cellUnknown", got)
	}
}

func TestFileNonexistentPathReturnsUnknown(t *testing.T) {
	f := NewFile("kk", "/nonexistent/path/kk.egtb", MemAll)
	if got := f.GetCell(0, 0); got != cellUnknown {
		t.Fatalf("GetCell on missing file = %d, want cellUnknown", got)
	}
}

func TestFileGetCellCompressed(t *testing.T) {
	dir := t.TempDir()
	layout, err := ParseLayout("kk", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	whiteData := make([]byte, layout.Size)
	for i := range whiteData {
		whiteData[i] = scoreToCell(ScoreDraw)
	}
	whiteData[7] = scoreToCell(50)
	stream, offsets := compressBlocks(whiteData)

	h := NewHeader("kk", 0, true, false, true)
	path := filepath.Join(dir, "kk.egtbc")
	buf := h.Marshal()
	bt := &blockTable{offsets: offsets}
	buf = append(buf, bt.marshal()...)
	buf = append(buf, stream...)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := NewFile("kk", path, MemAll)
	if got := f.GetCell(7, 0); got != scoreToCell(50) {
		t.Fatalf("GetCell(7,0) = %d, want %d", got, scoreToCell(50))
	}
	if got := f.GetCell(0, 0); got != cellDraw {
		t.Fatalf("GetCell(0,0) = %d, want cellDraw", got)
	}
}
