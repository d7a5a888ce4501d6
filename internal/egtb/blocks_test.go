package egtb

import (
	"bytes"
	"testing"
)

func TestBlockCount(t *testing.T) {
	cases := []struct {
		size int64
		want int
	}{
		{0, 0},
		{1, 1},
		{blockSize, 1},
		{blockSize + 1, 2},
		{blockSize * 3, 3},
	}
	for _, c := range cases {
		if got := blockCount(c.size); got != c.want {
			t.Errorf("blockCount(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestCompressDecompressBlocksRoundTrip(t *testing.T) {
	data := make([]byte, blockSize*2+100)
	for i := range data {
		data[i] = byte(i * 7 % 251)
	}

	stream, offsets := compressBlocks(data)
	if len(offsets) != blockCount(int64(len(data)))+1 {
		t.Fatalf("offsets len = %d, want %d", len(offsets), blockCount(int64(len(data)))+1)
	}

	var out []byte
	for i := 0; i < len(offsets)-1; i++ {
		start, end := offsets[i], offsets[i+1]
		wantLen := blockSize
		if i == len(offsets)-2 {
			wantLen = len(data) - i*blockSize
		}
		plain, err := decompressBlock(stream[start:end], wantLen)
		if err != nil {
			t.Fatalf("decompressBlock(%d): %v", i, err)
		}
		out = append(out, plain...)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("round-tripped data does not match original")
	}
}

func TestBlockTableMarshalRoundTrip(t *testing.T) {
	bt := &blockTable{offsets: []uint32{0, 100, 250, 400}}
	raw := bt.marshal()
	got, err := readBlockTable(bytes.NewReader(raw), len(bt.offsets)-1)
	if err != nil {
		t.Fatalf("readBlockTable: %v", err)
	}
	if len(got.offsets) != len(bt.offsets) {
		t.Fatalf("offsets len = %d, want %d", len(got.offsets), len(bt.offsets))
	}
	for i := range bt.offsets {
		if got.offsets[i] != bt.offsets[i] {
			t.Fatalf("offset[%d] = %d, want %d", i, got.offsets[i], bt.offsets[i])
		}
	}
}
