package model

type Colour string

const (
	White Colour = "white"
	Black Colour = "black"
)

// Opponent returns the other colour.
func (c Colour) Opponent() Colour {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (t PieceType) getPieceNotation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// fenLetter returns the FEN letter for the piece type, uppercase for white.
func (t PieceType) fenLetter(c Colour) byte {
	var b byte
	switch t {
	case King:
		b = 'k'
	case Queen:
		b = 'q'
	case Rook:
		b = 'r'
	case Bishop:
		b = 'b'
	case Knight:
		b = 'n'
	case Pawn:
		b = 'p'
	default:
		return '?'
	}
	if c == White {
		b -= 'a' - 'A'
	}
	return b
}

// Piece is a single chess piece. Pieces are mutated in place as they move;
// a captured piece is flagged rather than destroyed so the capture can be
// reverted exactly. InCheck is only meaningful for kings and is recomputed
// after every applied or undone move.
type Piece struct {
	Type     PieceType `json:"type"`
	Colour   Colour    `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
	Captured bool      `json:"captured"`
	InCheck  bool      `json:"inCheck,omitempty"`
}
