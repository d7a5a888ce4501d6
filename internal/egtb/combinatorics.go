package egtb

import "sort"

// Combination table sizes: C(64,2), C(64,3), C(64,4) for non-pawn pieces
// spread over all 64 squares, and C(48,2), C(48,3), C(48,4) for pawns
// confined to ranks 2-7 (indices 8..55).
const (
	sizeK8 = 10 // the a8-a5-d5 triangle, one representative per symmetry class
	sizeK2 = 32 // half the board (files a-d)
	sizeK  = 64

	sizeX    = 64
	sizeXX   = 64 * 63 / 2
	sizeXXX  = 64 * 63 * 62 / 6
	sizeXXXX = 64 * 63 * 62 * 61 / 24

	sizeP    = 48
	sizePP   = 48 * 47 / 2
	sizePPP  = 48 * 47 * 46 / 6
	sizePPPP = 48 * 47 * 46 * 45 / 24
)

// kIdxToPos lists the 10 squares of the canonical king triangle: the
// top-left quadrant wedge where col <= row <= 3 (row 0 = rank 8 in this
// package's square numbering), one representative per reflection class
// of the full 8-element symmetry group.
var kIdxToPos = [sizeK8]int{0, 8, 9, 16, 17, 18, 24, 25, 26, 27}

// kIdxOf maps a domain square back to its triangle index (inverse of
// kIdxToPos); built once at init.
var kIdxOf = func() map[int]int {
	m := make(map[int]int, sizeK8)
	for i, sq := range kIdxToPos {
		m[sq] = i
	}
	return m
}()

// combTables holds the sorted-combination lookup tables shared by every
// loaded file; built once at package init and consulted by binary search
// during encode, by direct index during decode.
var combTables = struct {
	xx, xxx, xxxx []int
	pp, ppp, pppp []int
	kk8, kk2      []int
}{}

func init() {
	combTables.xx, combTables.xxx, combTables.xxxx = buildCombos(0, 64)
	combTables.pp, combTables.ppp, combTables.pppp = buildCombos(8, 56)
	combTables.kk8 = buildKingPairs(kIdxToPos[:], nil)
	combTables.kk2 = buildKingPairs(nil, quadrantSquares())
}

// buildCombos enumerates sorted square combinations in [lo,hi) packed
// into an int (8 bits per square), ascending -- the same packing and
// ordering getKey_xx/xxx/xxxx rely on for binary search.
func buildCombos(lo, hi int) (pairs, triples, quads []int) {
	for i0 := lo; i0 < hi; i0++ {
		for i1 := i0 + 1; i1 < hi; i1++ {
			pairs = append(pairs, i0<<8|i1)
			for i2 := i1 + 1; i2 < hi; i2++ {
				triples = append(triples, i0<<16|i1<<8|i2)
				for i3 := i2 + 1; i3 < hi; i3++ {
					quads = append(quads, i0<<24|i1<<16|i2<<8|i3)
				}
			}
		}
	}
	return
}

// quadrantSquares lists every square whose file is a-d (col <= 3), the
// anchor set for the K_2 (half-board) king-pair enumeration.
func quadrantSquares() []int {
	var out []int
	for sq := 0; sq < 64; sq++ {
		if sq&7 <= 3 {
			out = append(out, sq)
		}
	}
	return out
}

// buildKingPairs enumerates every legal (non-adjacent, non-equal) pair of
// king squares anchored at each square in anchors, packed as k0<<8|k1.
// Exactly one of kIdxToPos/quadrant anchors is supplied per call.
func buildKingPairs(k8Anchors []int, quadrant []int) []int {
	var out []int
	anchors := k8Anchors
	if anchors == nil {
		anchors = quadrant
	}
	for _, k0 := range anchors {
		r0, f0 := k0>>3, k0&7
		for k1 := 0; k1 < 64; k1++ {
			if k0 == k1 {
				continue
			}
			r1, f1 := k1>>3, k1&7
			if absInt(r1-r0) <= 1 && absInt(f1-f0) <= 1 {
				continue
			}
			out = append(out, k0<<8|k1)
		}
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// bsearch returns the index of key in a sorted table, or -1.
func bsearch(table []int, key int) int {
	i := sort.SearchInts(table, key)
	if i < len(table) && table[i] == key {
		return i
	}
	return -1
}

// keyXX/XXX/XXXX compute the dense combination index of 2/3/4 squares of
// the same non-pawn piece type and side, sorting first since the table is
// built in ascending order.
func keyXX(sq0, sq1 int) int {
	if sq0 > sq1 {
		sq0, sq1 = sq1, sq0
	}
	return bsearch(combTables.xx, sq0<<8|sq1)
}

func keyXXX(sq0, sq1, sq2 int) int {
	s := []int{sq0, sq1, sq2}
	sort.Ints(s)
	return bsearch(combTables.xxx, s[0]<<16|s[1]<<8|s[2])
}

func keyXXXX(sq0, sq1, sq2, sq3 int) int {
	s := []int{sq0, sq1, sq2, sq3}
	sort.Ints(s)
	return bsearch(combTables.xxxx, s[0]<<24|s[1]<<16|s[2]<<8|s[3])
}

// keyPP/PPP/PPPP mirror keyXX/XXX/XXXX but over the 48 pawn-legal squares
// (ranks 2-7, i.e. board indices 8..55); callers pass raw square indices,
// not rank-shifted ones -- the table itself was built over [8,56).
func keyPP(sq0, sq1 int) int {
	if sq0 > sq1 {
		sq0, sq1 = sq1, sq0
	}
	return bsearch(combTables.pp, sq0<<8|sq1)
}

func keyPPP(sq0, sq1, sq2 int) int {
	s := []int{sq0, sq1, sq2}
	sort.Ints(s)
	return bsearch(combTables.ppp, s[0]<<16|s[1]<<8|s[2])
}

func keyPPPP(sq0, sq1, sq2, sq3 int) int {
	s := []int{sq0, sq1, sq2, sq3}
	sort.Ints(s)
	return bsearch(combTables.pppp, s[0]<<24|s[1]<<16|s[2]<<8|s[3])
}

// unkeyXX/XXX/XXXX decode a dense combination index back to squares.
func unkeyXX(idx int) (int, int) {
	v := combTables.xx[idx]
	return v >> 8 & 0xFF, v & 0xFF
}

func unkeyXXX(idx int) (int, int, int) {
	v := combTables.xxx[idx]
	return v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF
}

func unkeyXXXX(idx int) (int, int, int, int) {
	v := combTables.xxxx[idx]
	return v >> 24 & 0xFF, v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF
}

func unkeyPP(idx int) (int, int) {
	v := combTables.pp[idx]
	return v >> 8 & 0xFF, v & 0xFF
}

func unkeyPPP(idx int) (int, int, int) {
	v := combTables.ppp[idx]
	return v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF
}

func unkeyPPPP(idx int) (int, int, int, int) {
	v := combTables.pppp[idx]
	return v >> 24 & 0xFF, v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF
}

// keyKK8/KK2 compute the dense index of a (strongKing, weakKing) pair
// within the full-symmetry or half-board king-pair enumeration.
func keyKK8(k0, k1 int) int { return bsearch(combTables.kk8, k0<<8|k1) }
func keyKK2(k0, k1 int) int { return bsearch(combTables.kk2, k0<<8|k1) }

func unkeyKK8(idx int) (int, int) {
	v := combTables.kk8[idx]
	return v >> 8 & 0xFF, v & 0xFF
}

func unkeyKK2(idx int) (int, int) {
	v := combTables.kk2[idx]
	return v >> 8 & 0xFF, v & 0xFF
}
