package egtb

import (
	"fmt"
	"strings"

	"github.com/chesstools/egtb/internal/board"
)

// attrTag identifies one slot of a layout's attribute list.
type attrTag int

const (
	attrNone attrTag = iota
	attrK8           // lone king, full 8-fold symmetry (no pawns on board)
	attrK2           // lone king, half-board symmetry only (pawns present)
	attrKK8          // both kings combined, full symmetry
	attrKK2          // both kings combined, half-board symmetry
	attrX            // one non-pawn piece
	attrXX
	attrXXX
	attrXXXX
	attrP // one pawn
	attrPP
	attrPPP
	attrPPPP
)

// attrSlot is one entry of a layout's ordered attribute list: a tag, the
// side it belongs to, the piece type it carries (for X*/P* tags), and its
// precomputed multiplier.
type attrSlot struct {
	tag  attrTag
	side board.Color
	pt   board.PieceType
	mult int64
}

// size returns the keyspace of one attribute slot.
func (s attrSlot) size() int {
	switch s.tag {
	case attrK8:
		return sizeK8
	case attrK2:
		return sizeK2
	case attrKK8:
		return len(combTables.kk8)
	case attrKK2:
		return len(combTables.kk2)
	case attrX:
		return sizeX
	case attrXX:
		return sizeXX
	case attrXXX:
		return sizeXXX
	case attrXXXX:
		return sizeXXXX
	case attrP:
		return sizeP
	case attrPP:
		return sizePP
	case attrPPP:
		return sizePPP
	case attrPPPP:
		return sizePPPP
	}
	return 1
}

// Layout is the parsed attribute list and size for one material
// signature, per the packed order field supplied at registration.
type Layout struct {
	Name          string
	Slots         []attrSlot
	Size          int64
	PieceCount    [2][7]int // [side][PieceType] census, slot 0 unused (King handled by attrK*)
	Enpassantable bool
	StrongSide    board.Color
}

// countsFromSignature tallies piece letters per side from a material
// signature string like "kqkr" (strong side first).
func countsFromSignature(sig string) (counts [2][7]int, err error) {
	side := board.White
	for i := 0; i < len(sig); i++ {
		c := sig[i]
		if c == 'k' {
			if counts[side][board.King] > 0 {
				side = board.Black
			}
			counts[side][board.King]++
			continue
		}
		pt := board.PieceTypeFromChar(c)
		if pt == board.Empty {
			return counts, fmt.Errorf("egtb: invalid signature character %q in %q", c, sig)
		}
		counts[side][pt]++
	}
	if counts[0][board.King] != 1 || counts[1][board.King] != 1 {
		return counts, fmt.Errorf("egtb: signature %q must name exactly two kings", sig)
	}
	return counts, nil
}

// ParseLayout parses a material signature and packed order field into a
// Layout: the ordered attribute list, per-slot multipliers, and total
// size. order packs up to 6 three-bit slot indices (0 = declaration
// order); a non-zero order is applied by reorderSlots.
func ParseLayout(sig string, order uint32) (*Layout, error) {
	counts, err := countsFromSignature(sig)
	if err != nil {
		return nil, err
	}

	hasPawn := counts[0][board.Pawn] > 0 || counts[1][board.Pawn] > 0
	l := &Layout{
		Name:          sig,
		PieceCount:    counts,
		Enpassantable: counts[0][board.Pawn] > 0 && counts[1][board.Pawn] > 0,
	}

	bothKingsAlone := true
	for _, side := range [2]board.Color{board.White, board.Black} {
		for pt := board.Queen; pt <= board.Pawn; pt++ {
			if counts[side][pt] > 0 {
				bothKingsAlone = false
			}
		}
	}

	if bothKingsAlone {
		if hasPawn {
			l.Slots = append(l.Slots, attrSlot{tag: attrKK2})
		} else {
			l.Slots = append(l.Slots, attrSlot{tag: attrKK8})
		}
	} else {
		for _, side := range [2]board.Color{board.White, board.Black} {
			tag := attrK8
			if hasPawn {
				tag = attrK2
			}
			l.Slots = append(l.Slots, attrSlot{tag: tag, side: side})
		}
		for _, side := range [2]board.Color{board.White, board.Black} {
			for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight, board.Pawn} {
				n := counts[side][pt]
				if n == 0 {
					continue
				}
				tag, err := tagForCount(pt, n)
				if err != nil {
					return nil, err
				}
				l.Slots = append(l.Slots, attrSlot{tag: tag, side: side, pt: pt})
			}
		}
	}

	reorderSlots(l.Slots, order)

	mult := int64(1)
	for i := len(l.Slots) - 1; i >= 0; i-- {
		l.Slots[i].mult = mult
		mult *= int64(l.Slots[i].size())
	}
	l.Size = mult

	return l, nil
}

// tagForCount maps a piece type + multiplicity to its attribute tag.
func tagForCount(pt board.PieceType, n int) (attrTag, error) {
	isPawn := pt == board.Pawn
	switch n {
	case 1:
		if isPawn {
			return attrP, nil
		}
		return attrX, nil
	case 2:
		if isPawn {
			return attrPP, nil
		}
		return attrXX, nil
	case 3:
		if isPawn {
			return attrPPP, nil
		}
		return attrXXX, nil
	case 4:
		if isPawn {
			return attrPPPP, nil
		}
		return attrXXXX, nil
	}
	return attrNone, fmt.Errorf("egtb: unsupported piece multiplicity %d", n)
}

// reorderSlots applies the packed order field when non-zero. Each 3-bit
// group (low bits first) names a 1-based slot position to move to the
// front of the remaining list; 0 stops early and leaves the remainder in
// declaration order.
func reorderSlots(slots []attrSlot, order uint32) {
	if order == 0 {
		return
	}
	n := len(slots)
	remaining := append([]attrSlot(nil), slots...)
	out := make([]attrSlot, 0, n)
	for shift := 0; shift < 18 && len(remaining) > 0; shift += 3 {
		sel := int(order>>shift) & 0x7
		if sel == 0 || sel > len(remaining) {
			break
		}
		out = append(out, remaining[sel-1])
		remaining = append(remaining[:sel-1], remaining[sel:]...)
	}
	out = append(out, remaining...)
	copy(slots, out)
}

// ParseOrderedSignature splits a full egtb name such as "kqkr" into its
// canonical form; real toolchains also allow suffixes disambiguating
// promotion-origin pawns, but this reimplementation only tracks the bare
// signature used for file identity.
func ParseOrderedSignature(name string) string {
	return strings.ToLower(name)
}
