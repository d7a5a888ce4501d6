package egtb

import "testing"

func TestParseLayoutKQKR(t *testing.T) {
	layout, err := ParseLayout("kqkr", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if layout.Size <= 0 {
		t.Fatalf("expected positive size, got %d", layout.Size)
	}
	// Two separate K8 king slots (no pawns, and the kings are not combined
	// into one KK slot since each side carries a non-king piece) plus one
	// queen slot and one rook slot.
	if len(layout.Slots) != 4 {
		t.Fatalf("expected 4 slots (K, K, X, X), got %d: %+v", len(layout.Slots), layout.Slots)
	}
}

func TestParseLayoutKK(t *testing.T) {
	layout, err := ParseLayout("kk", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(layout.Slots) != 1 || layout.Slots[0].tag != attrKK8 {
		t.Fatalf("bare kings should collapse to a single KK8 slot, got %+v", layout.Slots)
	}
	if layout.Size != int64(len(combTables.kk8)) {
		t.Fatalf("size mismatch: got %d want %d", layout.Size, len(combTables.kk8))
	}
}

func TestParseLayoutPawnsUseK2(t *testing.T) {
	layout, err := ParseLayout("kpkp", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	for _, s := range layout.Slots {
		if s.tag == attrK8 {
			t.Fatalf("pawns present, expected K2 king slots, got K8: %+v", layout.Slots)
		}
	}
	if !layout.Enpassantable {
		t.Fatalf("both sides carry a pawn, expected Enpassantable true")
	}
}

func TestParseLayoutInvalidSignature(t *testing.T) {
	if _, err := ParseLayout("kzkr", 0); err == nil {
		t.Fatal("expected error for invalid piece letter")
	}
	if _, err := ParseLayout("kqr", 0); err == nil {
		t.Fatal("expected error for missing second king")
	}
}

func TestLayoutMultipliersProductIsSize(t *testing.T) {
	layout, err := ParseLayout("kqkr", 0)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	// The last slot's multiplier must be 1, and mult[i] must equal the
	// product of the sizes of every slot after it.
	if layout.Slots[len(layout.Slots)-1].mult != 1 {
		t.Fatalf("last slot multiplier should be 1, got %d", layout.Slots[len(layout.Slots)-1].mult)
	}
	product := int64(1)
	for i := len(layout.Slots) - 1; i >= 0; i-- {
		if layout.Slots[i].mult != product {
			t.Fatalf("slot %d multiplier = %d, want %d", i, layout.Slots[i].mult, product)
		}
		product *= int64(layout.Slots[i].size())
	}
	if product != layout.Size {
		t.Fatalf("product of sizes = %d, layout.Size = %d", product, layout.Size)
	}
}
