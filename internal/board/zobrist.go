package board

// Zobrist hash keys for Board.Hash. Not used by the encoder itself (the
// canonical key comes from the combinatorial index), but it gives the
// probe cache and tests a cheap position fingerprint, same role it plays
// for transposition tables in a full engine.
var (
	zobristPiece      [2][7][64]uint64 // [Side][PieceType][Square]
	zobristEnPassant  [8]uint64        // one per file
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

// next implements xorshift64*.
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)
	for s := 0; s < 2; s++ {
		for pt := 0; pt < 7; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[s][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// zobristXorPiece toggles the hash contribution of a piece on a square.
// Called symmetrically on placement and removal so two XORs cancel out.
func zobristXorPiece(b *Board, pt PieceType, side Color, sq Square) {
	b.Hash ^= zobristPiece[side][pt][sq]
}

// RecomputeHash derives Hash from scratch; used after FEN parsing and key
// decoding, which set castling rights, en passant and side to move
// directly (Put only XORs piece placement).
func (b *Board) RecomputeHash() {
	b.Hash = 0
	for s := Color(0); s < 2; s++ {
		for i := 0; i < maxPieceListSlots; i++ {
			p := b.Pieces[s][i]
			if p.IsEmpty() {
				continue
			}
			b.Hash ^= zobristPiece[s][p.Type][p.Idx]
		}
	}
	b.Hash ^= zobristCastling[b.Castling]
	if b.EnPassant.IsValid() {
		b.Hash ^= zobristEnPassant[b.EnPassant.Col()]
	}
	if b.Side == Black {
		b.Hash ^= zobristSideToMove
	}
}
