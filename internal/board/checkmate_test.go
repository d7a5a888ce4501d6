package board

import "testing"

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ra8+Ka1, Black Kh8 boxed in by its own pawns.
	b, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("parsing FEN:", err)
	}

	t.Log(b)
	t.Log("InCheck:", b.InCheck(b.Side))

	var moves MoveList
	b.GenLegalOnly(&moves, b.Side, false)
	t.Log("legal moves:", moves.Len())

	if !b.IsCheckmate() {
		t.Error("expected checkmate")
	}
	if b.IsStalemate() {
		t.Error("checkmate position should not also report stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king can capture the checking rook: not checkmate.
	b, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("parsing FEN:", err)
	}

	var moves MoveList
	b.GenLegalOnly(&moves, b.Side, false)
	t.Log("legal moves:", moves.Len())

	if b.IsCheckmate() {
		t.Error("expected not checkmate")
	}
}

func TestStalemate(t *testing.T) {
	// Black king a8 boxed in by White Ka6+Qb6: a7/b7/b8 all covered,
	// a8 itself untouched by either piece.
	b, err := ParseFEN("k7/8/KQ6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("parsing FEN:", err)
	}

	if b.InCheck(b.Side) {
		t.Fatal("position should not be check")
	}
	if !b.IsStalemate() {
		t.Error("expected stalemate")
	}
	if b.IsCheckmate() {
		t.Error("stalemate position should not also report checkmate")
	}
}
