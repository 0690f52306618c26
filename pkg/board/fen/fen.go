// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-engine/corvid/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position plus the active color, halfmove
// clock, and fullmove number that Position itself does not own (spec.md 3).
func Decode(s string) (*board.Position, board.Color, int, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) < 4 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}
	// Fields 5 and 6 (halfmove clock, fullmove number) are tolerated as
	// absent, matching how UCI "position fen ..." commands are sometimes
	// supplied without them.
	if len(parts) < 5 {
		parts = append(parts, "0")
	}
	if len(parts) < 6 {
		parts = append(parts, "1")
	}

	pos := board.NewEmptyPosition()

	// (1) Piece placement, rank 8 down to rank 1, files a through h.
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of ranks in FEN: %q", s)
	}
	for i, rank := range ranks {
		r := 7 - i
		f := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				f += int(c - '0')
			default:
				piece, ok := board.ParsePiece(c)
				if !ok {
					return nil, 0, 0, 0, fmt.Errorf("invalid piece %q in FEN: %q", c, s)
				}
				if f >= 8 {
					return nil, 0, 0, 0, fmt.Errorf("rank overflow in FEN: %q", s)
				}
				pos.Place(board.NewSquare(f, r), piece)
				f++
			}
		}
		if f != 8 {
			return nil, 0, 0, 0, fmt.Errorf("invalid rank length in FEN: %q", s)
		}
	}

	// (2) Active color.
	active, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", s)
	}
	pos.SetSide(active)

	// (3) Castling availability.
	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid castling in FEN: %q", s)
	}
	pos.SetCastling(castling)

	// (4) En passant target square.
	if parts[3] != "-" {
		ep, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid en passant square in FEN: %q", s)
		}
		pos.SetEnPassant(ep)
	}

	// (5) Halfmove clock since the last pawn move or capture.
	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number, starting at 1.
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	pos.RecomputeHash()
	return pos, active, halfmove, fullmove, nil
}

// Encode renders a position as a FEN record.
func Encode(pos *board.Position, active board.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		blanks := 0
		for f := 0; f < 8; f++ {
			piece := pos.PieceAt(board.NewSquare(f, r))
			if piece == board.Empty {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if pos.EnPassant() != 0 {
		ep = pos.EnPassant().String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), printColor(active), pos.Castling().String(), ep, halfmove, fullmove)
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parseCastling(s string) (board.Castling, bool) {
	var c board.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSide
		case 'Q':
			c |= board.WhiteQueenSide
		case 'k':
			c |= board.BlackKingSide
		case 'q':
			c |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return c, true
}
