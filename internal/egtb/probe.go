package egtb

import (
	"github.com/chesstools/egtb/internal/board"
)

// Public result sentinels (see §6 of the design: the probe API never
// returns a raw error, every failure folds into one of these).
const (
	ScoreDraw    = 0
	ScoreMate    = 32000
	ScoreWinning = 32001 // confirmed win/loss, but the exact distance could not be resolved
	ScoreMissing = 32002 // no table covers this position
	ScoreIllegal = 32003 // the position violates a data-model invariant
	ScoreUnknown = 32004 // not returned by Driver: a cell that cannot be loaded surfaces as ScoreMissing
)

// Cell byte layout (format version 0). Implementation-private per the
// design: callers never see raw cell bytes, only the translated Score.
const (
	cellDraw           byte = 0
	cellUnresolvedWin  byte = 1
	cellUnresolvedLoss byte = 2
	cellWinLo          byte = 3
	cellWinHi          byte = 129
	cellLossLo         byte = 130
	cellLossHi         byte = 252
	cellIllegal        byte = 253
	// 254 reserved; 255 is cellUnknown (defined in file.go, shared with the cache layer)
)

// maxUnplyDepth bounds the 1-ply resolution recursion. The table format
// guarantees unresolved cells converge within one ply of their children,
// but the bound guards against a malformed or synthetic table looping.
const maxUnplyDepth = 64

// cellToScore translates a raw cell byte (as seen from the perspective of
// the side to move for that cell) into a Score, or reports that the cell
// needs one-ply resolution.
func cellToScore(cell byte) (score int, unresolved bool) {
	switch {
	case cell == cellDraw:
		return ScoreDraw, false
	case cell == cellUnresolvedWin || cell == cellUnresolvedLoss:
		return 0, true
	case cell >= cellWinLo && cell <= cellWinHi:
		plies := int(cell-cellWinLo) + 1
		return ScoreMate - plies, false
	case cell >= cellLossLo && cell <= cellLossHi:
		plies := int(cell-cellLossLo) + 1
		return -(ScoreMate - plies), false
	case cell == cellIllegal:
		return ScoreIllegal, false
	default: // cellUnknown or any other unmapped byte
		return ScoreMissing, false
	}
}

// scoreToCell is the inverse of cellToScore, used by tests and tools that
// synthesize table contents in-process.
func scoreToCell(score int) byte {
	switch {
	case score == ScoreDraw:
		return cellDraw
	case score == ScoreIllegal:
		return cellIllegal
	case score == ScoreMissing, score == ScoreUnknown:
		return cellUnknown
	case score > 0 && score < ScoreMate:
		plies := ScoreMate - score
		return cellWinLo + byte(plies-1)
	case score < 0 && score > -ScoreMate:
		plies := ScoreMate - (-score)
		return cellLossLo + byte(plies-1)
	default:
		return cellUnknown
	}
}

// Driver composes the registry, key encoder, and move generator into the
// caller-facing probe API.
type Driver struct {
	Registry *Registry
}

// NewDriver creates a probe driver backed by registry.
func NewDriver(registry *Registry) *Driver {
	return &Driver{Registry: registry}
}

// GetScore returns the tablebase score for b from the perspective of the
// side to move, resolving unresolved cells by one-ply search.
func (d *Driver) GetScore(b *board.Board) int {
	return d.getScoreDepth(b, 0)
}

func (d *Driver) getScoreDepth(b *board.Board, depth int) int {
	sig := b.Signature()
	file := d.Registry.Lookup(sig)
	if file == nil {
		return ScoreMissing
	}
	layout, err := file.Layout()
	if err != nil {
		return ScoreMissing
	}

	rec, err := Encode(b, layout)
	if err != nil {
		return ScoreIllegal
	}

	sideIdx := 0 // 0 = white to move, 1 = black to move, in the file's own stream indexing
	if b.Side == board.Black {
		sideIdx = 1
	}
	if rec.FlipSide {
		sideIdx ^= 1
	}

	cell := file.GetCell(rec.Key, sideIdx)
	score, unresolved := cellToScore(cell)
	if !unresolved {
		return score
	}
	if depth >= maxUnplyDepth {
		return ScoreWinning
	}
	return d.resolveUnply(b, depth)
}

// resolveUnply expands one ply of legal moves and returns the score best
// for the side to move, derived from the (assumed resolved) children.
func (d *Driver) resolveUnply(b *board.Board, depth int) int {
	var moves board.MoveList
	b.GenLegalOnly(&moves, b.Side, false)

	if moves.Len() == 0 {
		if b.InCheck(b.Side) {
			return -ScoreMate
		}
		return ScoreDraw
	}

	best := ScoreMissing
	haveCandidate := false
	for i := 0; i < moves.Len(); i++ {
		hist := b.Make(moves.Get(i))
		child := d.getScoreDepth(b, depth+1)
		b.TakeBack(hist)

		candidate, ok := flipToParent(child)
		if !ok {
			continue
		}
		if !haveCandidate || candidate > best {
			best = candidate
			haveCandidate = true
		}
	}
	if !haveCandidate {
		return ScoreMissing
	}
	return best
}

// flipToParent converts a child score (from the opponent's perspective,
// one ply deeper) into the parent's perspective, incrementing the mate
// distance by one ply. Sentinel scores other than a definite mate/draw
// are not usable by the parent and report ok=false.
func flipToParent(child int) (score int, ok bool) {
	switch child {
	case ScoreDraw:
		return ScoreDraw, true
	case ScoreMissing, ScoreIllegal, ScoreUnknown, ScoreWinning:
		return 0, false
	}
	plies := ScoreMate - absInt(child)
	newPlies := plies + 1
	if child > 0 {
		return -(ScoreMate - newPlies), true
	}
	return ScoreMate - newPlies, true
}

// Probe behaves like GetScore but also walks the optimal continuation,
// appending the mover's best move at each step until mate, draw, or a
// position outside the tables is reached.
func (d *Driver) Probe(b *board.Board) (score int, line []board.Move) {
	cur := b.Copy()
	score = d.GetScore(cur)

	for step := 0; step < maxUnplyDepth*4; step++ {
		if score == ScoreDraw || score == ScoreMissing || score == ScoreIllegal || score == ScoreUnknown {
			return score, line
		}
		if absInt(score) >= ScoreMate {
			return score, line
		}

		var moves board.MoveList
		cur.GenLegalOnly(&moves, cur.Side, false)
		if moves.Len() == 0 {
			return score, line
		}

		bestMove := board.NoMove
		bestVal := 0
		haveBest := false
		for i := 0; i < moves.Len(); i++ {
			hist := cur.Make(moves.Get(i))
			child := d.GetScore(cur)
			cur.TakeBack(hist)

			candidate, ok := flipToParent(child)
			if !ok {
				continue
			}
			if !haveBest || candidate > bestVal {
				bestVal = candidate
				bestMove = moves.Get(i)
				haveBest = true
			}
		}
		if !haveBest {
			return score, line
		}

		line = append(line, bestMove)
		cur.Make(bestMove)
		score = bestVal
	}
	return score, line
}
