package board

import "fmt"

// CastlingRights packs the four castling bits: black-long, black-short,
// white-long, white-short from the high bit down (declaration order, bit 0
// upward, follows the FEN field order: K,Q,k,q).
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                             // Q
	BlackKingSide                              // k
	BlackQueenSide                             // q
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling-rights field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// Can reports whether side can still castle in the given direction.
func (cr CastlingRights) Can(side Color, kingSide bool) bool {
	switch {
	case side == White && kingSide:
		return cr&WhiteKingSide != 0
	case side == White && !kingSide:
		return cr&WhiteQueenSide != 0
	case side == Black && kingSide:
		return cr&BlackKingSide != 0
	default:
		return cr&BlackQueenSide != 0
	}
}

// Status bits record cheap-to-cache facts about a Board; they are derived
// state, never load-bearing for correctness (always recomputable from
// Squares/PieceList).
type Status uint8

const (
	StatusNone Status = 0
	// StatusChecked is set when the side to move's king is currently attacked.
	StatusChecked Status = 1 << iota
)

// maxPieceListSlots is the fixed size of each side's sparse piece list.
// Slot 0 is always the king; slots 1..15 hold the rest (possibly sparse,
// i.e. some slots may be empty "holes" after a capture).
const maxPieceListSlots = 16

// Board is the dual representation used throughout the engine: a dense
// array for fast move generation and attack tests, and a sparse per-side
// piece list the key encoder walks by piece type rather than by square.
// The two views are kept strictly in sync by every mutator in this file.
type Board struct {
	Squares  [64]Piece
	Pieces   [2][maxPieceListSlots]Piece // slot 0 = king
	Side     Color
	Castling CastlingRights
	EnPassant Square
	Status   Status
	Hash     uint64
}

// NewBoard returns an empty board (no pieces, white to move).
func NewBoard() *Board {
	b := &Board{EnPassant: NoSquare}
	b.Clear()
	return b
}

// Clear resets the board to empty, white to move, no castling/ep rights.
func (b *Board) Clear() {
	for i := range b.Squares {
		b.Squares[i] = EmptyPiece
	}
	for s := 0; s < 2; s++ {
		for i := range b.Pieces[s] {
			b.Pieces[s][i] = EmptyPiece
		}
	}
	b.Side = White
	b.Castling = NoCastling
	b.EnPassant = NoSquare
	b.Status = StatusNone
	b.Hash = 0
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// PieceAt returns the piece occupying sq (IsEmpty() true if none).
func (b *Board) PieceAt(sq Square) Piece {
	return b.Squares[sq]
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Squares[sq].IsEmpty()
}

// King returns the square of side's king (slot 0 of its piece list).
func (b *Board) King(side Color) Square {
	return Square(b.Pieces[side][0].Idx)
}

// firstFreeSlot finds the lowest empty slot in 1..15 for side, or -1 if full.
func (b *Board) firstFreeSlot(side Color) int {
	for i := 1; i < maxPieceListSlots; i++ {
		if b.Pieces[side][i].IsEmpty() {
			return i
		}
	}
	return -1
}

// Put places a piece of the given type/side on sq, keeping both
// representations in sync. Kings must be placed with PutKing.
func (b *Board) Put(pt PieceType, side Color, sq Square) {
	if pt == King {
		b.PutKing(side, sq)
		return
	}
	slot := b.firstFreeSlot(side)
	if slot < 0 {
		panic("board: piece list full")
	}
	b.Pieces[side][slot] = Piece{Type: pt, Side: side, Idx: int(sq)}
	b.Squares[sq] = Piece{Type: pt, Side: side, Idx: slot}
	zobristXorPiece(b, pt, side, sq)
}

// PutKing places side's king on sq (slot 0).
func (b *Board) PutKing(side Color, sq Square) {
	b.Pieces[side][0] = Piece{Type: King, Side: side, Idx: int(sq)}
	b.Squares[sq] = Piece{Type: King, Side: side, Idx: 0}
	zobristXorPiece(b, King, side, sq)
}

// PutAtSlot places a piece into an exact, caller-chosen piece-list slot
// rather than the first free one. Used by TakeBack to restore a captured
// piece to precisely the slot it occupied before the capture, since
// picking "first free slot" again could land it in a different hole than
// the one it started in and break the make/unmake round-trip.
func (b *Board) PutAtSlot(pt PieceType, side Color, sq Square, slot int) {
	b.Pieces[side][slot] = Piece{Type: pt, Side: side, Idx: int(sq)}
	b.Squares[sq] = Piece{Type: pt, Side: side, Idx: slot}
	zobristXorPiece(b, pt, side, sq)
}

// Remove clears sq, freeing its piece-list slot (leaving a hole).
func (b *Board) Remove(sq Square) Piece {
	p := b.Squares[sq]
	if p.IsEmpty() {
		return p
	}
	zobristXorPiece(b, p.Type, p.Side, sq)
	b.Pieces[p.Side][p.Idx] = EmptyPiece
	b.Squares[sq] = EmptyPiece
	return p
}

// Move relocates the piece on `from` to `to` (which must be empty),
// updating both representations and the piece's recorded square.
func (b *Board) Move(from, to Square) {
	p := b.Squares[from]
	if p.IsEmpty() {
		return
	}
	zobristXorPiece(b, p.Type, p.Side, from)
	b.Squares[from] = EmptyPiece
	b.Pieces[p.Side][p.Idx].Idx = int(to)
	b.Squares[to] = Piece{Type: p.Type, Side: p.Side, Idx: p.Idx}
	zobristXorPiece(b, p.Type, p.Side, to)
}

// ReplaceType changes the piece type occupying sq in place, keeping its
// side and piece-list slot unchanged. Used for promotion and its undo so
// the slot index survives the round trip intact.
func (b *Board) ReplaceType(sq Square, newType PieceType) {
	p := b.Squares[sq]
	zobristXorPiece(b, p.Type, p.Side, sq)
	b.Pieces[p.Side][p.Idx].Type = newType
	b.Squares[sq].Type = newType
	zobristXorPiece(b, newType, p.Side, sq)
}

// Signature returns the material signature of the board: the lowercase
// piece-letter multiset per side, strong side first, e.g. "kqkr".
func (b *Board) Signature() string {
	strong, weak := b.Side, b.Side.Other()
	if StrongSide(b) != b.Side {
		strong, weak = weak, strong
	}
	return sideSignature(b, strong) + sideSignature(b, weak)
}

func sideSignature(b *Board, side Color) string {
	s := []byte{'k'}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight, Pawn} {
		for i := 1; i < maxPieceListSlots; i++ {
			if b.Pieces[side][i].Type == pt {
				s = append(s, pt.Char())
			}
		}
	}
	return string(s)
}

// StrongSide reports which color is the "strong" side of b: more pieces,
// tie-broken by total exchange value (kings excluded from the tiebreak
// since both sides always have exactly one).
func StrongSide(b *Board) Color {
	var cnt, mat [2]int
	for s := Color(0); s < 2; s++ {
		for i := 1; i < maxPieceListSlots; i++ {
			p := b.Pieces[s][i]
			if p.IsEmpty() {
				continue
			}
			cnt[s]++
			mat[s] += p.Type.ExchangeValue()
		}
	}
	if cnt[White] != cnt[Black] {
		if cnt[White] > cnt[Black] {
			return White
		}
		return Black
	}
	if mat[White] >= mat[Black] {
		return White
	}
	return Black
}

// String renders an 8x8 diagram plus state fields for debugging.
func (b *Board) String() string {
	s := "\n"
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			s += b.Squares[NewSquare(col, row)].String() + " "
		}
		s += "\n"
	}
	s += fmt.Sprintf("side=%s castle=%s ep=%s\n", b.Side, b.Castling, b.EnPassant)
	return s
}

// Validate checks the structural invariants from the data model: exactly
// one king per side (checked against both the piece list and the dense
// board, so a desync between the two representations is caught rather than
// missed), no pawns on the back ranks, sane piece counts.
func (b *Board) Validate() error {
	var kingsOnBoard [2]int
	for sq := Square(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Type == King {
			kingsOnBoard[p.Side]++
		}
	}
	for s := Color(0); s < 2; s++ {
		if b.Pieces[s][0].Type != King {
			return fmt.Errorf("board: side %s has no king in slot 0", s)
		}
		if kingsOnBoard[s] != 1 {
			return fmt.Errorf("board: side %s has %d kings on the board", Color(s), kingsOnBoard[s])
		}
	}
	queens, rooks, bishops, knights, pawns := [2]int{}, [2]int{}, [2]int{}, [2]int{}, [2]int{}
	for s := Color(0); s < 2; s++ {
		for i := 1; i < maxPieceListSlots; i++ {
			p := b.Pieces[s][i]
			switch p.Type {
			case Queen:
				queens[s]++
			case Rook:
				rooks[s]++
			case Bishop:
				bishops[s]++
			case Knight:
				knights[s]++
			case Pawn:
				pawns[s]++
				if p.Idx < 8 || p.Idx >= 56 {
					return fmt.Errorf("board: pawn on back rank at %s", Square(p.Idx))
				}
			}
		}
		if queens[s] > 9 || rooks[s] > 10 || bishops[s] > 10 || knights[s] > 10 || pawns[s] > 8 {
			return fmt.Errorf("board: side %s exceeds piece-count limits", Color(s))
		}
	}
	if b.EnPassant.IsValid() {
		r := b.EnPassant.Row()
		if r != 2 && r != 5 {
			return fmt.Errorf("board: en-passant square %s not on rank 3/6", b.EnPassant)
		}
	}
	return nil
}
