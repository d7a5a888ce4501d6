package board

import "testing"

func TestParseFENRejectsDuplicateKing(t *testing.T) {
	// Two white kings: illegal regardless of the rest of the position.
	_, err := ParseFEN("7k/8/8/8/8/8/8/K6K w - - 0 1")
	if err == nil {
		t.Fatal("expected error for a side with two kings, got nil")
	}
}

func TestParseFENAcceptsSingleKingPerSide(t *testing.T) {
	b, err := ParseFEN("7k/8/8/8/8/8/3Q4/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.King(White) == NoSquare || b.King(Black) == NoSquare {
		t.Fatal("expected both kings placed")
	}
}

func TestValidateRejectsDuplicateKingOnDenseBoard(t *testing.T) {
	b := NewBoard()
	b.PutKing(White, NewSquare(0, 0))
	b.PutKing(Black, NewSquare(7, 7))
	// Simulate a desync: a second white king written directly onto the
	// dense board without going through Put/PutKing or the piece list.
	b.Squares[NewSquare(4, 4)] = Piece{Type: King, Side: White, Idx: 0}

	if err := b.Validate(); err == nil {
		t.Fatal("expected Validate to reject a duplicate king on the dense board")
	}
}

func TestValidateAllowsElevenMixedMinorMajorPieces(t *testing.T) {
	// 4 rooks + 4 bishops + 3 knights for White: 11 combined, but each
	// individually within the per-type cap of 10.
	b := NewBoard()
	b.PutKing(White, NewSquare(4, 0))
	b.PutKing(Black, NewSquare(4, 7))
	squares := []Square{
		NewSquare(0, 1), NewSquare(1, 1), NewSquare(2, 1), NewSquare(3, 1),
		NewSquare(0, 2), NewSquare(1, 2), NewSquare(2, 2), NewSquare(3, 2),
		NewSquare(0, 3), NewSquare(1, 3), NewSquare(2, 3),
	}
	types := []PieceType{
		Rook, Rook, Rook, Rook,
		Bishop, Bishop, Bishop, Bishop,
		Knight, Knight, Knight,
	}
	for i, sq := range squares {
		b.Put(types[i], White, sq)
	}

	if err := b.Validate(); err != nil {
		t.Fatalf("expected 4R+4B+3N to validate, got: %v", err)
	}
}
