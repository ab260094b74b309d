package model

import "fmt"

// Position is a square on the board. Row 0 is the eighth rank (black's back
// rank) and row 7 the first; column 0 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// IsValid reports whether the position lies on the board.
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", 'a'+p.Col)
}
