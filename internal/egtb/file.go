package egtb

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// MemMode controls how much of a side's decompressed data stream is kept
// resident at once.
type MemMode int

const (
	MemAll MemMode = iota
	MemTiny
	MemSmart
)

// LoadMode controls when Registry.Preload materializes file contents.
type LoadMode int

const (
	LoadOnRequest LoadMode = iota
	LoadAll
)

// smartThreshold is the default size cutoff below which MemSmart behaves
// like MemAll; configurable per File via SetSmartThreshold.
const smartThreshold = 16 * 1024 * 1024

// cellUnknown is the byte GetCell returns when a side's data could not be
// loaded; the probe driver surfaces this as ScoreMissing.
const cellUnknown byte = 0xFF

// loadStatus values for a File's header/table load attempt.
const (
	statusNone int32 = iota
	statusLoaded
	statusError
)

// sideBuf is the immutable snapshot swapped in by readBuf: the decoded
// bytes for [start,end) of one side's stream. Readers load the current
// pointer atomically and never mutate what it points to.
type sideBuf struct {
	data       []byte
	start, end int64
}

// File is one on-disk endgame table: a header, optional per-side
// compressed-block tables, and up to two data streams (white-to-move,
// black-to-move). Safe for concurrent probing once registered.
type File struct {
	Name string
	path string

	memMode        MemMode
	smartThreshold int64

	mtx          sync.Mutex
	header       *Header
	layout       *Layout
	blockTables  [2]*blockTable
	dataOffset   [2]int64
	headerLoaded bool
	loadErr      error
	fh           *os.File

	sdmtx [2]sync.Mutex
	buf   [2]atomic.Pointer[sideBuf]
	group [2]singleflight.Group

	sideStatus [2]atomic.Int32
}

// NewFile registers (without yet opening) the endgame file for a material
// signature at path, to be lazily loaded on first probe.
func NewFile(name, path string, memMode MemMode) *File {
	return &File{Name: name, path: path, memMode: memMode, smartThreshold: smartThreshold}
}

// SetSmartThreshold overrides the MemSmart all-vs-tiny size cutoff.
func (f *File) SetSmartThreshold(n int64) { f.smartThreshold = n }

func (f *File) effectiveMemMode() MemMode {
	if f.memMode != MemSmart {
		return f.memMode
	}
	if f.layout != nil && f.layout.Size < f.smartThreshold {
		return MemAll
	}
	return MemTiny
}

// Size returns the keyspace size of the file's material signature, or 0
// if the header has not been loaded yet.
func (f *File) Size() int64 {
	if f.layout == nil {
		return 0
	}
	return f.layout.Size
}

// Layout returns the parsed attribute layout, loading the header first if
// needed.
func (f *File) Layout() (*Layout, error) {
	if err := f.checkToLoadHeaderAndTable(); err != nil {
		return nil, err
	}
	return f.layout, nil
}

// checkToLoadHeaderAndTable loads the header and, for compressed sides,
// the block-offset table, exactly once. Subsequent calls are a cheap
// boolean check under f.mtx.
func (f *File) checkToLoadHeaderAndTable() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.headerLoaded {
		return f.loadErr
	}

	f.loadErr = f.loadHeaderLocked()
	f.headerLoaded = true
	if f.loadErr != nil {
		for side := 0; side < 2; side++ {
			f.sideStatus[side].Store(statusError)
		}
	}
	return f.loadErr
}

func (f *File) loadHeaderLocked() error {
	fh, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("egtb: opening %s: %w", f.path, err)
	}

	raw := make([]byte, headerSize)
	if _, err := fh.ReadAt(raw, 0); err != nil {
		fh.Close()
		return fmt.Errorf("egtb: reading header of %s: %w", f.path, err)
	}
	header, err := UnmarshalHeader(raw)
	if err != nil {
		fh.Close()
		return err
	}

	layout, err := ParseLayout(f.Name, header.Order)
	if err != nil {
		fh.Close()
		return err
	}

	offset := int64(headerSize)
	for side := 0; side < 2; side++ {
		if !header.HasSide(side == 0) {
			continue
		}
		if header.IsCompressed() {
			count := blockCount(layout.Size)
			bt, err := readBlockTable(&sectionReader{fh, offset}, count)
			if err != nil {
				fh.Close()
				return err
			}
			f.blockTables[side] = bt
			offset += int64(len(bt.offsets)) * 4
			f.dataOffset[side] = offset
			offset += int64(bt.offsets[len(bt.offsets)-1])
		} else {
			f.dataOffset[side] = offset
			offset += layout.Size
		}
	}

	f.header = header
	f.layout = layout
	f.fh = fh
	return nil
}

// sectionReader adapts an os.File + running offset to io.Reader for
// binary.Read, advancing offset as bytes are consumed.
type sectionReader struct {
	fh     *os.File
	offset int64
}

func (r *sectionReader) Read(p []byte) (int, error) {
	n, err := r.fh.ReadAt(p, r.offset)
	r.offset += int64(n)
	return n, err
}

// GetCell returns the raw byte for key idx on the given side (0=white,
// 1=black to move). Lock-free on the fast path once the side's window
// covers idx; otherwise the side's mutex is held across the re-check of
// that window and the fetch, so only one fetch per side runs at a time and
// a waiting caller finds the window already loaded.
func (f *File) GetCell(idx int64, side int) byte {
	if bp := f.buf[side].Load(); bp != nil && idx >= bp.start && idx < bp.end {
		return bp.data[idx-bp.start]
	}

	if err := f.checkToLoadHeaderAndTable(); err != nil {
		return cellUnknown
	}
	if !f.header.HasSide(side == 0) {
		return cellUnknown
	}

	f.sdmtx[side].Lock()
	defer f.sdmtx[side].Unlock()
	bp := f.buf[side].Load()
	if bp != nil && idx >= bp.start && idx < bp.end {
		return bp.data[idx-bp.start]
	}

	if err := f.readBuf(idx, side); err != nil {
		f.sideStatus[side].Store(statusError)
		return cellUnknown
	}
	f.sideStatus[side].Store(statusLoaded)

	bp = f.buf[side].Load()
	if bp == nil || idx < bp.start || idx >= bp.end {
		return cellUnknown
	}
	return bp.data[idx-bp.start]
}

// readBuf materializes the window covering idx for side. Called with
// f.sdmtx[side] held; the fetch goes through the side's singleflight group,
// keyed by block start.
func (f *File) readBuf(idx int64, side int) error {
	mode := f.effectiveMemMode()
	var blockStart int64
	if mode == MemTiny {
		blockStart = (idx / blockSize) * blockSize
	}

	key := fmt.Sprintf("%d:%d", side, blockStart)
	_, err, _ := f.group[side].Do(key, func() (any, error) {
		data, start, end, err := f.loadWindow(side, mode, blockStart)
		if err != nil {
			return nil, err
		}
		f.buf[side].Store(&sideBuf{data: data, start: start, end: end})
		return nil, nil
	})
	return err
}

func (f *File) loadWindow(side int, mode MemMode, blockStart int64) (data []byte, start, end int64, err error) {
	size := f.layout.Size

	if mode == MemAll {
		data, err := f.readRange(side, 0, size)
		if err != nil {
			return nil, 0, 0, err
		}
		return data, 0, size, nil
	}

	winEnd := blockStart + blockSize
	if winEnd > size {
		winEnd = size
	}
	data, err = f.readRange(side, blockStart, winEnd)
	if err != nil {
		return nil, 0, 0, err
	}
	return data, blockStart, winEnd, nil
}

// readRange returns the decompressed bytes of side's stream in [from,to).
func (f *File) readRange(side int, from, to int64) ([]byte, error) {
	if !f.header.IsCompressed() {
		buf := make([]byte, to-from)
		if _, err := f.fh.ReadAt(buf, f.dataOffset[side]+from); err != nil {
			return nil, fmt.Errorf("egtb: reading %s side %d: %w", f.path, side, err)
		}
		return buf, nil
	}

	bt := f.blockTables[side]
	firstBlock := int(from / blockSize)
	lastBlock := int((to - 1) / blockSize)
	out := make([]byte, 0, to-from)
	for b := firstBlock; b <= lastBlock; b++ {
		offset, length := bt.blockBytes(b)
		compressed := make([]byte, length)
		if _, err := f.fh.ReadAt(compressed, f.dataOffset[side]+int64(offset)); err != nil {
			return nil, fmt.Errorf("egtb: reading compressed block %d of %s: %w", b, f.path, err)
		}
		blockLen := blockSize
		if b == blockCount(f.layout.Size)-1 {
			blockLen = int(f.layout.Size - int64(b)*blockSize)
		}
		plain, err := decompressBlock(compressed, blockLen)
		if err != nil {
			return nil, err
		}
		out = append(out, plain...)
	}
	lo := from - int64(firstBlock)*blockSize
	hi := lo + (to - from)
	return out[lo:hi], nil
}

// RemoveBuffers drops any materialized side buffers, forcing the next
// GetCell to reload from disk.
func (f *File) RemoveBuffers() {
	f.buf[0].Store(nil)
	f.buf[1].Store(nil)
}
