package egtb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// blockSize is the granularity of one compressed block (EGTB_SIZE_COMPRESS_BLOCK).
const blockSize = 64 * 1024

// compressBlocks splits data into blockSize chunks, compresses each with
// flate, and returns the concatenated compressed stream plus the
// per-block byte offsets (the on-disk block table).
func compressBlocks(data []byte) (stream []byte, offsets []uint32) {
	offsets = make([]uint32, 0, (len(data)+blockSize-1)/blockSize+1)
	var buf bytes.Buffer
	offsets = append(offsets, 0)
	for start := 0; start < len(data); start += blockSize {
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		w, _ := flate.NewWriter(&buf, flate.BestCompression)
		w.Write(data[start:end])
		w.Close()
		offsets = append(offsets, uint32(buf.Len()))
	}
	return buf.Bytes(), offsets
}

// decompressBlock inflates the compressed bytes for one block, which must
// expand to exactly wantLen bytes (the last block of a stream may be
// shorter than blockSize).
func decompressBlock(compressed []byte, wantLen int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	out := make([]byte, wantLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("egtb: decompress block: %w", err)
	}
	return out, nil
}

// blockCount returns the number of blockSize-granularity blocks needed to
// cover size bytes.
func blockCount(size int64) int {
	return int((size + blockSize - 1) / blockSize)
}

// blockTable is the per-side compressed-block offset table: offsets[i]
// is the start of block i within the side's compressed stream, and
// offsets[len(offsets)-1] is the stream's total compressed length.
type blockTable struct {
	offsets []uint32
}

func readBlockTable(r io.Reader, count int) (*blockTable, error) {
	offsets := make([]uint32, count+1)
	if err := binary.Read(r, binary.LittleEndian, &offsets); err != nil {
		return nil, fmt.Errorf("egtb: reading block table: %w", err)
	}
	return &blockTable{offsets: offsets}, nil
}

func (bt *blockTable) blockBytes(i int) (offset uint32, length uint32) {
	return bt.offsets[i], bt.offsets[i+1] - bt.offsets[i]
}

func (bt *blockTable) marshal() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, bt.offsets)
	return buf.Bytes()
}
