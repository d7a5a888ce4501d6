package board

// knightDeltas and kingDeltas are (drow, dcol) offsets for leaper pieces.
var knightDeltas = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
var kingDeltas = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// rookDirs and bishopDirs are ray directions for sliding pieces.
var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

func onBoard(row, col int) bool { return row >= 0 && row < 8 && col >= 0 && col < 8 }

// BeAttacked reports whether sq is attacked by any piece of bySide.
func (b *Board) BeAttacked(sq Square, bySide Color) bool {
	row, col := sq.Row(), sq.Col()

	// A pawn attacks diagonally toward its own forward direction; white
	// advances toward row 0, black toward row 7, so the attacking pawn
	// sits one row further from its own promotion rank than sq.
	pawnRow := row + 1
	if bySide == Black {
		pawnRow = row - 1
	}
	for _, dc := range [2]int{-1, 1} {
		if onBoard(pawnRow, col+dc) && b.Squares[NewSquare(col+dc, pawnRow)].Is(Pawn, bySide) {
			return true
		}
	}

	for _, d := range knightDeltas {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) && b.Squares[NewSquare(c, r)].Is(Knight, bySide) {
			return true
		}
	}

	for _, d := range kingDeltas {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) && b.Squares[NewSquare(c, r)].Is(King, bySide) {
			return true
		}
	}

	for _, d := range rookDirs {
		if b.rayHits(row, col, d, bySide, Rook) {
			return true
		}
	}
	for _, d := range bishopDirs {
		if b.rayHits(row, col, d, bySide, Bishop) {
			return true
		}
	}
	return false
}

// rayHits scans from (row,col) along d and reports whether the first
// occupied square is an attacker of bySide matching alongType or Queen.
func (b *Board) rayHits(row, col int, d [2]int, bySide Color, alongType PieceType) bool {
	r, c := row+d[0], col+d[1]
	for onBoard(r, c) {
		p := b.Squares[NewSquare(c, r)]
		if !p.IsEmpty() {
			return p.Side == bySide && (p.Type == alongType || p.Type == Queen)
		}
		r, c = r+d[0], c+d[1]
	}
	return false
}

// InCheck reports whether side's king is currently attacked.
func (b *Board) InCheck(side Color) bool {
	return b.BeAttacked(b.King(side), side.Other())
}

// Gen appends pseudo-legal moves for attackerSide to moveList. If
// captureOnly, only captures (including capturing promotions) are kept.
func (b *Board) Gen(moveList *MoveList, attackerSide Color, captureOnly bool) {
	for i := 0; i < maxPieceListSlots; i++ {
		p := b.Pieces[attackerSide][i]
		if p.IsEmpty() {
			continue
		}
		from := Square(p.Idx)
		switch p.Type {
		case Pawn:
			b.genPawnMoves(moveList, from, attackerSide, captureOnly)
		case Knight:
			b.genLeaper(moveList, from, attackerSide, knightDeltas[:], captureOnly)
		case King:
			b.genLeaper(moveList, from, attackerSide, kingDeltas[:], captureOnly)
			if !captureOnly {
				b.genCastling(moveList, attackerSide)
			}
		case Rook:
			b.genSlider(moveList, from, attackerSide, rookDirs[:], captureOnly)
		case Bishop:
			b.genSlider(moveList, from, attackerSide, bishopDirs[:], captureOnly)
		case Queen:
			b.genSlider(moveList, from, attackerSide, rookDirs[:], captureOnly)
			b.genSlider(moveList, from, attackerSide, bishopDirs[:], captureOnly)
		}
	}
}

func (b *Board) genLeaper(moveList *MoveList, from Square, side Color, deltas [][2]int, capOnly bool) {
	row, col := from.Row(), from.Col()
	for _, d := range deltas {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := NewSquare(c, r)
		target := b.Squares[to]
		if !target.IsEmpty() && target.Side == side {
			continue
		}
		if capOnly && target.IsEmpty() {
			continue
		}
		moveList.Add(NewMove(from, to))
	}
}

func (b *Board) genSlider(moveList *MoveList, from Square, side Color, dirs [][2]int, capOnly bool) {
	row, col := from.Row(), from.Col()
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := NewSquare(c, r)
			target := b.Squares[to]
			if target.IsEmpty() {
				if !capOnly {
					moveList.Add(NewMove(from, to))
				}
			} else {
				if target.Side != side {
					moveList.Add(NewMove(from, to))
				}
				break
			}
			r, c = r+d[0], c+d[1]
		}
	}
}

func (b *Board) genPawnMoves(moveList *MoveList, from Square, side Color, capOnly bool) {
	row, col := from.Row(), from.Col()
	forward, startRow, promoRow := -1, 6, 0
	if side == Black {
		forward, startRow, promoRow = 1, 1, 7
	}

	addPawn := func(to Square) {
		if to.Row() == promoRow {
			for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				moveList.Add(NewPromotion(from, to, pt))
			}
		} else {
			moveList.Add(NewMove(from, to))
		}
	}

	if !capOnly {
		if r1 := row + forward; onBoard(r1, col) && b.Squares[NewSquare(col, r1)].IsEmpty() {
			addPawn(NewSquare(col, r1))
			if row == startRow {
				if r2 := row + 2*forward; b.Squares[NewSquare(col, r2)].IsEmpty() {
					moveList.Add(NewMove(from, NewSquare(col, r2)))
				}
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		r, c := row+forward, col+dc
		if !onBoard(r, c) {
			continue
		}
		to := NewSquare(c, r)
		if to == b.EnPassant {
			moveList.Add(NewEnPassant(from, to))
			continue
		}
		if target := b.Squares[to]; !target.IsEmpty() && target.Side != side {
			addPawn(to)
		}
	}
}

func (b *Board) genCastling(moveList *MoveList, side Color) {
	row := 7
	kingSideRight, queenSideRight := WhiteKingSide, WhiteQueenSide
	if side == Black {
		row = 0
		kingSideRight, queenSideRight = BlackKingSide, BlackQueenSide
	}
	if b.Castling&kingSideRight != 0 && b.castlePathClear(side, true) {
		moveList.Add(NewCastling(NewSquare(4, row), NewSquare(6, row)))
	}
	if b.Castling&queenSideRight != 0 && b.castlePathClear(side, false) {
		moveList.Add(NewCastling(NewSquare(4, row), NewSquare(2, row)))
	}
}

// castlePathClear checks the in-between squares are empty and that
// neither the king's start, transit, nor landing square is attacked.
func (b *Board) castlePathClear(side Color, kingSide bool) bool {
	row := 7
	if side == Black {
		row = 0
	}
	enemy := side.Other()
	if b.BeAttacked(NewSquare(4, row), enemy) {
		return false
	}
	if kingSide {
		if !b.Squares[NewSquare(5, row)].IsEmpty() || !b.Squares[NewSquare(6, row)].IsEmpty() {
			return false
		}
		return !b.BeAttacked(NewSquare(5, row), enemy) && !b.BeAttacked(NewSquare(6, row), enemy)
	}
	if !b.Squares[NewSquare(3, row)].IsEmpty() || !b.Squares[NewSquare(2, row)].IsEmpty() || !b.Squares[NewSquare(1, row)].IsEmpty() {
		return false
	}
	return !b.BeAttacked(NewSquare(3, row), enemy) && !b.BeAttacked(NewSquare(2, row), enemy)
}

// GenLegalOnly appends only legal moves: pseudo-legal moves verified by
// make/unmake not to leave the mover's own king in check.
func (b *Board) GenLegalOnly(moveList *MoveList, side Color, captureOnly bool) {
	var pseudo MoveList
	b.Gen(&pseudo, side, captureOnly)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		hist := b.Make(m)
		if !b.InCheck(side) {
			moveList.Add(m)
		}
		b.TakeBack(hist)
	}
}

// clearCastleRights drops the castling right tied to a rook's home
// corner; called whenever that corner's rook moves away or is captured.
func (b *Board) clearCastleRights(sq Square, side Color) {
	row := 7
	if side == Black {
		row = 0
	}
	if sq.Row() != row {
		return
	}
	switch sq.Col() {
	case 0:
		if side == White {
			b.Castling &^= WhiteQueenSide
		} else {
			b.Castling &^= BlackQueenSide
		}
	case 7:
		if side == White {
			b.Castling &^= WhiteKingSide
		} else {
			b.Castling &^= BlackKingSide
		}
	}
}

// Make applies m, updating Squares/Pieces/Side/Castling/EnPassant/Hash,
// and returns a Hist sufficient to undo it exactly via TakeBack.
func (b *Board) Make(m Move) Hist {
	from, to := m.From(), m.To()
	moving := b.Squares[from]
	hist := Hist{
		Move:          m,
		MovedPiece:    moving,
		CapturedAt:    to,
		PrevEnPassant: b.EnPassant,
		PrevCastling:  b.Castling,
		PrevStatus:    b.Status,
	}

	if m.IsEnPassant() {
		capSq := NewSquare(to.Col(), from.Row())
		cap := b.Squares[capSq]
		hist.CapturedAt = capSq
		hist.CapturedPiece = cap
		hist.CapturedSlot = cap.Idx
		b.Remove(capSq)
	} else if target := b.Squares[to]; !target.IsEmpty() {
		hist.CapturedPiece = target
		hist.CapturedSlot = target.Idx
		b.clearCastleRights(to, target.Side)
		b.Remove(to)
	}

	b.Move(from, to)

	if m.IsPromotion() {
		b.ReplaceType(to, m.Promotion())
	}

	if m.IsCastling() {
		row := from.Row()
		if to.Col() == 6 {
			b.Move(NewSquare(7, row), NewSquare(5, row))
		} else {
			b.Move(NewSquare(0, row), NewSquare(3, row))
		}
	}

	if moving.Type == King {
		if moving.Side == White {
			b.Castling &^= WhiteKingSide | WhiteQueenSide
		} else {
			b.Castling &^= BlackKingSide | BlackQueenSide
		}
	}
	if moving.Type == Rook {
		b.clearCastleRights(from, moving.Side)
	}

	b.EnPassant = NoSquare
	if moving.Type == Pawn && abs(int(to)-int(from)) == 16 {
		b.EnPassant = NewSquare(to.Col(), (from.Row()+to.Row())/2)
	}

	b.Side = b.Side.Other()
	b.Hash ^= zobristSideToMove
	return hist
}

// TakeBack undoes the move described by hist, restoring the board exactly
// (including both representations, castling rights, and en passant).
func (b *Board) TakeBack(hist Hist) {
	b.Side = b.Side.Other()
	b.Hash ^= zobristSideToMove
	m := hist.Move
	from, to := m.From(), m.To()

	if m.IsCastling() {
		row := from.Row()
		if to.Col() == 6 {
			b.Move(NewSquare(5, row), NewSquare(7, row))
		} else {
			b.Move(NewSquare(3, row), NewSquare(0, row))
		}
	}

	if m.IsPromotion() {
		b.ReplaceType(to, Pawn)
	}

	b.Move(to, from)

	if !hist.CapturedPiece.IsEmpty() {
		b.PutAtSlot(hist.CapturedPiece.Type, hist.CapturedPiece.Side, hist.CapturedAt, hist.CapturedSlot)
	}

	b.EnPassant = hist.PrevEnPassant
	b.Castling = hist.PrevCastling
	b.Status = hist.PrevStatus
}

// HasLegalMoves reports whether the side to move has any legal move.
func (b *Board) HasLegalMoves() bool {
	var moves MoveList
	b.GenLegalOnly(&moves, b.Side, false)
	return moves.Len() > 0
}

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func (b *Board) IsCheckmate() bool {
	return b.InCheck(b.Side) && !b.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has
// no legal move.
func (b *Board) IsStalemate() bool {
	return !b.InCheck(b.Side) && !b.HasLegalMoves()
}

// IsLegalEpCastle validates the board's en-passant square against the
// side to move and adjacent pawns. If the square is implausible it is
// silently downgraded to NoSquare rather than rejected outright -- the
// engine must still produce a usable position even when an input FEN's
// ep square turns out to be bogus.
func (b *Board) IsLegalEpCastle() {
	if !b.EnPassant.IsValid() {
		return
	}
	pawnSide, epRow, pawnRow := White, 5, 4
	if b.Side == White {
		pawnSide, epRow, pawnRow = Black, 2, 3
	}
	if b.EnPassant.Row() != epRow || !b.Squares[NewSquare(b.EnPassant.Col(), pawnRow)].Is(Pawn, pawnSide) {
		b.EnPassant = NoSquare
	}
}
