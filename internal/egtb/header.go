package egtb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Property bit flags stored in Header.Property.
const (
	propWhite      uint32 = 1 << 0
	propBlack      uint32 = 1 << 1
	propCompressed uint32 = 1 << 2
)

// signatureMainV0 identifies the only header version this package reads.
const signatureMainV0 uint16 = 0x9E70

// headerSize is the fixed on-disk size of a Header, in bytes.
const headerSize = 2 + 4 + 4 + 1 + 11 + 20 + 64 + 8 + 80

// Header is the fixed-size preamble of an endgame file: format version,
// which sides are present, the attribute ordering used to build the
// data stream, the deepest DTM bucket, a display name/copyright, and a
// checksum over the data that follows.
type Header struct {
	Signature uint16
	Property  uint32
	Order     uint32
	DTMMax    uint8
	Pad       [11]byte // reserved, unused by this version
	Name      [20]byte
	Copyright [64]byte
	Checksum  int64
	Reserved  [80]byte
}

// IsValid reports whether the header carries a recognized signature.
func (h *Header) IsValid() bool { return h.Signature == signatureMainV0 }

// HasSide reports whether side's data stream is present.
func (h *Header) HasSide(white bool) bool {
	if white {
		return h.Property&propWhite != 0
	}
	return h.Property&propBlack != 0
}

// IsCompressed reports whether the per-side streams are block-compressed.
func (h *Header) IsCompressed() bool { return h.Property&propCompressed != 0 }

// NewHeader builds a header for freshly generated data (used by tests and
// tools that synthesize tables in-process rather than reading them).
func NewHeader(name string, order uint32, whiteData, blackData bool, compressed bool) *Header {
	h := &Header{Signature: signatureMainV0, Order: order}
	copy(h.Name[:], name)
	if whiteData {
		h.Property |= propWhite
	}
	if blackData {
		h.Property |= propBlack
	}
	if compressed {
		h.Property |= propCompressed
	}
	return h
}

// Marshal serializes the header to its fixed-size binary form,
// little-endian throughout.
func (h *Header) Marshal() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(headerSize)
	binary.Write(buf, binary.LittleEndian, h.Signature)
	binary.Write(buf, binary.LittleEndian, h.Property)
	binary.Write(buf, binary.LittleEndian, h.Order)
	buf.WriteByte(h.DTMMax)
	buf.Write(h.Pad[:])
	buf.Write(h.Name[:])
	buf.Write(h.Copyright[:])
	binary.Write(buf, binary.LittleEndian, h.Checksum)
	buf.Write(h.Reserved[:])
	return buf.Bytes()
}

// UnmarshalHeader parses the fixed-size header from the front of data.
func UnmarshalHeader(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("egtb: header needs %d bytes, got %d", headerSize, len(data))
	}
	r := bytes.NewReader(data[:headerSize])
	h := &Header{}
	binary.Read(r, binary.LittleEndian, &h.Signature)
	binary.Read(r, binary.LittleEndian, &h.Property)
	binary.Read(r, binary.LittleEndian, &h.Order)
	dtm, _ := r.ReadByte()
	h.DTMMax = dtm
	io_ := r
	io_.Read(h.Pad[:])
	io_.Read(h.Name[:])
	io_.Read(h.Copyright[:])
	binary.Read(r, binary.LittleEndian, &h.Checksum)
	io_.Read(h.Reserved[:])
	if !h.IsValid() {
		return nil, fmt.Errorf("egtb: unrecognized header signature %#x", h.Signature)
	}
	return h, nil
}

// ChecksumData returns the xxhash64 digest of buf, the digest format of
// Header.Checksum. NewHeader leaves Checksum zero and the file loader does
// not verify it.
func ChecksumData(buf []byte) int64 {
	return int64(xxhash.Sum64(buf))
}
