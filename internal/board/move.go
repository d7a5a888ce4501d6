package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flags (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

const (
	flagNormal    uint16 = 0 << 14
	flagPromotion uint16 = 1 << 14
	flagEnPassant uint16 = 2 << 14
	flagCastling  uint16 = 3 << 14
)

// NoMove is the invalid/null move.
const NoMove Move = 0xFFFF

// promoOrder lists the four promotion targets in the 2-bit encoding order.
var promoOrder = [4]PieceType{Knight, Bishop, Rook, Queen}

// NewMove creates a normal (non-special) move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	idx := 0
	for i, pt := range promoOrder {
		if pt == promo {
			idx = i
		}
	}
	return Move(from) | Move(to)<<6 | Move(idx)<<12 | Move(flagPromotion)
}

// NewEnPassant creates an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagEnPassant)
}

// NewCastling creates a castling move (the king's own from/to squares).
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagCastling)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

func (m Move) flag() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion target (only meaningful if IsPromotion).
func (m Move) Promotion() PieceType { return promoOrder[(m>>12)&3] }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.flag() == flagPromotion }

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool { return m.flag() == flagCastling }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.flag() == flagEnPassant }

// IsCapture reports whether m captures a piece on b (including en passant).
func (m Move) IsCapture(b *Board) bool {
	if m.IsEnPassant() {
		return true
	}
	return !b.IsEmpty(m.To())
}

// String renders UCI notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a UCI move string against the given board, inferring
// the castling/en-passant/promotion flags from board state.
func ParseMove(s string, b *Board) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if promo == Empty {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	if p.Type == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if p.Type == Pawn && to == b.EnPassant {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MoveList is a fixed-capacity move buffer; avoids per-ply allocation
// during the recursive one-ply probe resolution.
type MoveList struct {
	moves [218]Move
	count int
}

func (ml *MoveList) Add(m Move)          { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int            { return ml.count }
func (ml *MoveList) Get(i int) Move      { return ml.moves[i] }
func (ml *MoveList) Clear()              { ml.count = 0 }
func (ml *MoveList) Slice() []Move       { return ml.moves[:ml.count] }

// Hist records everything needed to undo a single Make call, matching the
// original engine's Hist record: the move, the moving and captured
// pieces, and the pre-move side state.
type Hist struct {
	Move          Move
	MovedPiece    Piece
	CapturedPiece Piece
	CapturedAt    Square // differs from Move.To() only for en passant
	CapturedSlot  int    // exact piece-list slot to restore the capture into
	PrevEnPassant Square
	PrevCastling  CastlingRights
	PrevStatus    Status
}
