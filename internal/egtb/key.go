package egtb

import (
	"fmt"

	"github.com/chesstools/egtb/internal/board"
)

// kingRegionFlip[sq] is the flip mode that sends sq into the canonical
// king triangle (kIdxToPos), built once at init rather than hand-copied
// from another engine's square numbering (this package's row 0 is rank
// 8, so any externally published table would need re-deriving anyway).
var kingRegionFlip [64]board.FlipMode

func init() {
	allModes := []board.FlipMode{
		board.FlipNone, board.FlipHorizontal, board.FlipVertical,
		board.FlipRotate90, board.FlipRotate180, board.FlipRotate270,
		board.FlipFlipVH, board.FlipFlipHV,
	}
	for sq := 0; sq < 64; sq++ {
		found := false
		for _, m := range allModes {
			dst := board.FlipSquare(board.Square(sq), m)
			if _, ok := kIdxOf[int(dst)]; ok {
				kingRegionFlip[sq] = m
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Sprintf("egtb: no flip sends square %d into the king triangle", sq))
		}
	}
}

// KeyRec is the result of encoding a board: the flat index within its
// layout's keyspace and whether the strong side was recolored to black
// to get there (the caller must invert side-to-move accordingly).
type KeyRec struct {
	Key      int64
	FlipSide bool
}

// relSide indexes a Layout slot's "strong" (0) or "weak" (1) role; it is
// resolved to a literal board.Color only at encode/decode time via the
// position's actual strong side.
type relSide = board.Color

const (
	relStrong relSide = board.White
	relWeak   relSide = board.Black
)

// Encode maps a board to its canonical key under layout, reducing the
// position by the board's symmetry group so that every member of a
// symmetry class produces the same key.
func Encode(b *board.Board, layout *Layout) (KeyRec, error) {
	strong := board.StrongSide(b)
	flipSide := strong == board.Black
	flipMode := board.FlipNone
	if flipSide {
		flipMode = board.FlipVertical
	}
	colorOf := func(rel relSide) board.Color {
		if rel == relStrong {
			return strong
		}
		return strong.Other()
	}

	// King canonicalization always resolves before any other attribute's
	// squares are read, matching the common case where king slots lead
	// the declared attribute order.
	for _, slot := range layout.Slots {
		switch slot.tag {
		case attrK8, attrK2:
			sq := board.FlipSquare(b.King(colorOf(slot.side)), flipMode)
			if slot.tag == attrK8 {
				flipMode = board.Compose(flipMode, kingRegionFlip[sq])
			} else if sq.Col() > 3 {
				flipMode = board.Compose(flipMode, board.FlipHorizontal)
			}
		case attrKK8:
			sq := board.FlipSquare(b.King(strong), flipMode)
			flipMode = board.Compose(flipMode, kingRegionFlip[sq])
		case attrKK2:
			sq := board.FlipSquare(b.King(strong), flipMode)
			if sq.Col() > 3 {
				flipMode = board.Compose(flipMode, board.FlipHorizontal)
			}
		}
	}

	var key int64
	for _, slot := range layout.Slots {
		idx, err := encodeSlot(b, slot, flipMode, strong, colorOf)
		if err != nil {
			return KeyRec{}, err
		}
		key += int64(idx) * slot.mult
	}

	return KeyRec{Key: key, FlipSide: flipSide}, nil
}

// pieceSquares collects the flipped squares of every piece of pt on
// colorOf(slot.side), in piece-list order (not yet sorted -- the
// keyXX-family helpers sort internally).
func pieceSquares(b *board.Board, side board.Color, pt board.PieceType, flipMode board.FlipMode) []int {
	var out []int
	for i := 1; i < 16; i++ {
		p := b.Pieces[side][i]
		if p.Type == pt {
			out = append(out, int(board.FlipSquare(board.Square(p.Idx), flipMode)))
		}
	}
	return out
}

func encodeSlot(b *board.Board, slot attrSlot, flipMode board.FlipMode, strong board.Color, colorOf func(relSide) board.Color) (int, error) {
	switch slot.tag {
	case attrK8:
		sq := board.FlipSquare(b.King(colorOf(slot.side)), flipMode)
		return kIdxOf[int(sq)], nil
	case attrK2:
		sq := board.FlipSquare(b.King(colorOf(slot.side)), flipMode)
		return sq.Row()*4 + sq.Col(), nil
	case attrKK8:
		k0 := board.FlipSquare(b.King(strong), flipMode)
		k1 := board.FlipSquare(b.King(strong.Other()), flipMode)
		return keyKK8(int(k0), int(k1)), nil
	case attrKK2:
		k0 := board.FlipSquare(b.King(strong), flipMode)
		k1 := board.FlipSquare(b.King(strong.Other()), flipMode)
		return keyKK2(int(k0), int(k1)), nil
	}

	side := colorOf(slot.side)
	sqs := pieceSquares(b, side, slot.pt, flipMode)
	isPawn := slot.pt == board.Pawn

	switch slot.tag {
	case attrX:
		if len(sqs) != 1 {
			return 0, fmt.Errorf("egtb: expected 1 square for %v, got %d", slot.tag, len(sqs))
		}
		return sqs[0], nil
	case attrP:
		if len(sqs) != 1 {
			return 0, fmt.Errorf("egtb: expected 1 square for %v, got %d", slot.tag, len(sqs))
		}
		return sqs[0] - 8, nil
	case attrXX:
		return keyXX(sqs[0], sqs[1]), nil
	case attrPP:
		return keyPP(sqs[0], sqs[1]), nil
	case attrXXX:
		return keyXXX(sqs[0], sqs[1], sqs[2]), nil
	case attrPPP:
		return keyPPP(sqs[0], sqs[1], sqs[2]), nil
	case attrXXXX:
		return keyXXXX(sqs[0], sqs[1], sqs[2], sqs[3]), nil
	case attrPPPP:
		return keyPPPP(sqs[0], sqs[1], sqs[2], sqs[3]), nil
	}
	if isPawn {
		return 0, fmt.Errorf("egtb: unhandled pawn attribute %v", slot.tag)
	}
	return 0, fmt.Errorf("egtb: unhandled attribute %v", slot.tag)
}

// Decode reconstructs a board from a key, a display flip mode, and the
// literal color that plays the "strong" role. Passing flipMode=FlipNone
// reproduces the canonical (domain) placement used by Encode, which is
// what makes the encode/decode round-trip law hold.
func Decode(idx int64, layout *Layout, flipMode board.FlipMode, strong board.Color) (*board.Board, error) {
	if idx < 0 || idx >= layout.Size {
		return nil, fmt.Errorf("egtb: key %d out of range [0,%d)", idx, layout.Size)
	}
	b := board.NewBoard()
	b.Side = strong
	colorOf := func(rel relSide) board.Color {
		if rel == relStrong {
			return strong
		}
		return strong.Other()
	}

	remaining := idx
	for _, slot := range layout.Slots {
		sub := int(remaining / slot.mult)
		remaining %= slot.mult
		if err := decodeSlot(b, slot, sub, flipMode, strong, colorOf); err != nil {
			return nil, err
		}
	}

	b.RecomputeHash()
	return b, nil
}

func decodeSlot(b *board.Board, slot attrSlot, sub int, flipMode board.FlipMode, strong board.Color, colorOf func(relSide) board.Color) error {
	place := func(sq int, side board.Color) {
		b.PutKing(side, board.FlipSquare(board.Square(sq), flipMode))
	}

	switch slot.tag {
	case attrK8:
		place(kIdxToPos[sub], colorOf(slot.side))
		return nil
	case attrK2:
		row, col := sub/4, sub%4
		place(int(board.NewSquare(col, row)), colorOf(slot.side))
		return nil
	case attrKK8:
		k0, k1 := unkeyKK8(sub)
		place(k0, strong)
		place(k1, strong.Other())
		return nil
	case attrKK2:
		k0, k1 := unkeyKK2(sub)
		place(k0, strong)
		place(k1, strong.Other())
		return nil
	}

	side := colorOf(slot.side)
	put := func(sq int) {
		b.Put(slot.pt, side, board.FlipSquare(board.Square(sq), flipMode))
	}

	switch slot.tag {
	case attrX:
		put(sub)
	case attrP:
		put(sub + 8)
	case attrXX:
		a, c := unkeyXX(sub)
		put(a)
		put(c)
	case attrPP:
		a, c := unkeyPP(sub)
		put(a)
		put(c)
	case attrXXX:
		a, c, d := unkeyXXX(sub)
		put(a)
		put(c)
		put(d)
	case attrPPP:
		a, c, d := unkeyPPP(sub)
		put(a)
		put(c)
		put(d)
	case attrXXXX:
		a, c, d, e := unkeyXXXX(sub)
		put(a)
		put(c)
		put(d)
		put(e)
	case attrPPPP:
		a, c, d, e := unkeyPPPP(sub)
		put(a)
		put(c)
		put(d)
		put(e)
	default:
		return fmt.Errorf("egtb: unhandled attribute %v during decode", slot.tag)
	}
	return nil
}
