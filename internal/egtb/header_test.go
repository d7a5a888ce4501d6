package egtb

import "testing"

func TestHeaderMarshalRoundTrip(t *testing.T) {
	h := NewHeader("kqkr", 0, true, true, true)
	h.DTMMax = 42
	h.Checksum = ChecksumData([]byte("payload"))

	raw := h.Marshal()
	if len(raw) != headerSize {
		t.Fatalf("marshaled header is %d bytes, want %d", len(raw), headerSize)
	}

	got, err := UnmarshalHeader(raw)
	if err != nil {
		t.Fatalf("UnmarshalHeader: %v", err)
	}
	if !got.IsValid() {
		t.Fatal("round-tripped header should be valid")
	}
	if !got.HasSide(true) || !got.HasSide(false) {
		t.Fatal("expected both sides present")
	}
	if !got.IsCompressed() {
		t.Fatal("expected compressed flag set")
	}
	if got.DTMMax != 42 {
		t.Fatalf("DTMMax = %d, want 42", got.DTMMax)
	}
	if got.Checksum != h.Checksum {
		t.Fatalf("checksum mismatch: got %d want %d", got.Checksum, h.Checksum)
	}
}

func TestHeaderRejectsShortBuffer(t *testing.T) {
	if _, err := UnmarshalHeader([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

func TestHeaderRejectsBadSignature(t *testing.T) {
	h := NewHeader("kk", 0, true, false, false)
	raw := h.Marshal()
	raw[0] = 0
	raw[1] = 0
	if _, err := UnmarshalHeader(raw); err == nil {
		t.Fatal("expected error for unrecognized signature")
	}
}

func TestChecksumDataDeterministic(t *testing.T) {
	a := ChecksumData([]byte("hello"))
	b := ChecksumData([]byte("hello"))
	if a != b {
		t.Fatal("checksum should be deterministic for identical input")
	}
	if ChecksumData([]byte("hello")) == ChecksumData([]byte("world")) {
		t.Fatal("checksum collided on distinct inputs (suspicious, not strictly impossible)")
	}
}
