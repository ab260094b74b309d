package model

import (
	"strings"

	"github.com/pkg/errors"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// BehtingFEN is the Behting study, the engine's default starting position.
const BehtingFEN = "8/8/7p/3KNN1k/2p4p/8/3P2p1/8 w - -"

var fenPieceTypes = map[byte]PieceType{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

// ParseFEN builds a board from a FEN string. Piece placement and side to
// move are honoured exactly; the castling-rights field is honoured when
// present; the en-passant, halfmove and fullmove fields are tolerated and
// ignored. A malformed string fails before any board is handed back.
func ParseFEN(fen string) (*Board, Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, "", errors.Errorf("invalid FEN %q: need at least piece placement and side to move", fen)
	}

	board := NewBoard()
	if err := parsePlacement(board, parts[0]); err != nil {
		return nil, "", err
	}

	var toMove Colour
	switch parts[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, "", errors.Errorf("invalid FEN side to move %q", parts[1])
	}

	if len(parts) > 2 {
		applyCastlingRights(board, parts[2])
	}
	return board, toMove, nil
}

func parsePlacement(board *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return errors.Errorf("invalid FEN placement %q: want 8 ranks, got %d", placement, len(ranks))
	}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			colour := Black
			lower := c
			if c >= 'A' && c <= 'Z' {
				colour = White
				lower = c + ('a' - 'A')
			}
			kind, ok := fenPieceTypes[lower]
			if !ok {
				return errors.Errorf("invalid FEN piece %q in rank %q", string(c), rank)
			}
			if col >= 8 {
				return errors.Errorf("invalid FEN rank %q: more than 8 squares", rank)
			}
			pos := Position{Row: row, Col: col}
			if kind == King && board.King(colour) != nil {
				return errors.Errorf("invalid FEN: more than one %s king", colour)
			}
			board.Add(&Piece{
				Type:     kind,
				Colour:   colour,
				Position: pos,
				HasMoved: kind == Pawn && row != pawnHomeRow(colour),
			})
			col++
		}
		if col != 8 {
			return errors.Errorf("invalid FEN rank %q: want 8 squares, got %d", rank, col)
		}
	}
	for _, colour := range []Colour{White, Black} {
		if board.King(colour) == nil {
			return errors.Errorf("invalid FEN: no %s king", colour)
		}
	}
	return nil
}

func pawnHomeRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}

// applyCastlingRights marks rooks (or whole kings) as having moved for every
// right the FEN withholds, so the unmoved-flag gate in the castling
// generator matches the imported position.
func applyCastlingRights(board *Board, rights string) {
	markRook := func(colour Colour, col int) {
		row := 0
		if colour == White {
			row = 7
		}
		p := board.PieceAt(Position{Row: row, Col: col})
		if p != nil && p.Type == Rook && p.Colour == colour {
			p.HasMoved = true
		}
	}
	if !strings.Contains(rights, "K") {
		markRook(White, 7)
	}
	if !strings.Contains(rights, "Q") {
		markRook(White, 0)
	}
	if !strings.Contains(rights, "k") {
		markRook(Black, 7)
	}
	if !strings.Contains(rights, "q") {
		markRook(Black, 0)
	}
	if !strings.ContainsAny(rights, "KQ") {
		board.King(White).HasMoved = true
	}
	if !strings.ContainsAny(rights, "kq") {
		board.King(Black).HasMoved = true
	}
}
