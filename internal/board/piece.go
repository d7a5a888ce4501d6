package board

// Color represents the color of a piece or the side to move.
type Color int8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// PieceType represents the kind of a chess piece.
type PieceType int8

const (
	Empty PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// pieceTypeName follows the declaration order above; index by PieceType.
var pieceTypeName = [...]byte{' ', 'k', 'q', 'r', 'b', 'n', 'p'}

// Char returns the FEN letter for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt < Empty || pt > Pawn {
		return '?'
	}
	return pieceTypeName[pt]
}

// PieceTypeFromChar parses a FEN piece letter (case-insensitive) into a type.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'k', 'K':
		return King
	case 'q', 'Q':
		return Queen
	case 'r', 'R':
		return Rook
	case 'b', 'B':
		return Bishop
	case 'n', 'N':
		return Knight
	case 'p', 'P':
		return Pawn
	default:
		return Empty
	}
}

// exchangeValue is used to pick the "strong" side when a material
// signature ties on piece count (not on sign convention used elsewhere).
var exchangeValue = [...]int{0, 10000, 1100, 500, 300, 250, 100}

// ExchangeValue returns the relative exchange value of a piece type,
// used to break ties when determining the stronger side of a signature.
func (pt PieceType) ExchangeValue() int {
	return exchangeValue[pt]
}

// Piece is a single board occupant. The invariant (Type==Empty) iff
// (Side==NoColor) iff (Idx==-1) must hold at all times.
//
// Idx points back to the piece's slot in Board.Pieces[Side] so that the
// sparse and dense representations can always be reconciled in O(1).
type Piece struct {
	Type PieceType
	Side Color
	Idx  int
}

// EmptyPiece is the zero-value empty occupant.
var EmptyPiece = Piece{Type: Empty, Side: NoColor, Idx: -1}

// IsEmpty reports whether the square/slot holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Is reports whether p is the given type/side combination.
func (p Piece) Is(pt PieceType, side Color) bool {
	return p.Type == pt && p.Side == side
}

// String renders the piece as a FEN letter (uppercase for white).
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	ch := p.Type.Char()
	if p.Side == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}
