package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Board. Two extensions beyond
// standard FEN are tolerated: a trailing "--" in place of the castle
// rights "-", and missing halfmove/fullmove fields (defaulting to 0/1).
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := NewBoard()

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.Side = White
	case "b":
		b.Side = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %q", parts[1])
	}

	castling := parts[2]
	if castling == "--" {
		castling = "-"
	}
	if err := parseCastlingRights(b, castling); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %q", parts[3])
		}
		b.EnPassant = sq
	}
	b.IsLegalEpCastle()

	if len(parts) > 4 {
		if _, err := strconv.Atoi(parts[4]); err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %q", parts[4])
		}
	}
	if len(parts) > 5 {
		if _, err := strconv.Atoi(parts[5]); err != nil {
			return nil, fmt.Errorf("invalid full-move number: %q", parts[5])
		}
	}

	b.RecomputeHash()
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}
	return b, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		row := i // FEN rank 8 first, which is our row 0
		col := 0
		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			pt := PieceTypeFromChar(byte(c))
			if pt == Empty {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			side := Black
			if c >= 'A' && c <= 'Z' {
				side = White
			}
			if pt == King && b.Pieces[side][0].Type == King {
				return fmt.Errorf("invalid piece placement: side %s has more than one king", side)
			}
			b.Put(pt, side, NewSquare(col, row))
			col++
		}
		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}
	return nil
}

func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		b.Castling = NoCastling
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			b.Castling |= WhiteKingSide
		case 'Q':
			b.Castling |= WhiteQueenSide
		case 'k':
			b.Castling |= BlackKingSide
		case 'q':
			b.Castling |= BlackQueenSide
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}
	return nil
}

// ToFEN renders the board as a standard FEN string (halfmove/fullmove
// fields are always emitted as 0/1 since the board does not track them).
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.Squares[NewSquare(col, row)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(b.Side.String())
	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())
	sb.WriteString(" 0 1")
	return sb.String()
}
