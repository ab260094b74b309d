package model

import "strings"

// Board is an 8x8 grid holding at most one live piece per square, together
// with per-colour piece lists and king references for O(1) lookup. The board
// itself knows nothing about chess legality; that is the move generator's
// job. Piece lists keep their insertion (FEN scan) order, which fixes the
// move generation order and with it the search agent's tie-breaking.
type Board struct {
	squares [8][8]*Piece
	pieces  map[Colour][]*Piece
	kings   map[Colour]*Piece
}

func NewBoard() *Board {
	return &Board{
		pieces: map[Colour][]*Piece{
			White: {},
			Black: {},
		},
		kings: map[Colour]*Piece{},
	}
}

func (b *Board) IsValidCoordinate(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func (b *Board) Occupied(pos Position) bool {
	return b.squares[pos.Row][pos.Col] != nil
}

func (b *Board) PieceAt(pos Position) *Piece {
	return b.squares[pos.Row][pos.Col]
}

// Add registers a piece with the board and puts it on the grid at its stored
// position. Used during board setup; moves use Place and Remove.
func (b *Board) Add(p *Piece) {
	b.pieces[p.Colour] = append(b.pieces[p.Colour], p)
	if p.Type == King {
		b.kings[p.Colour] = p
	}
	b.squares[p.Position.Row][p.Position.Col] = p
}

// Place puts an already registered piece on the given square and updates the
// piece's stored position to match its grid slot. The piece's previous slot
// is cleared so no square ever holds a stale pointer.
func (b *Board) Place(p *Piece, pos Position) {
	if b.squares[p.Position.Row][p.Position.Col] == p {
		b.squares[p.Position.Row][p.Position.Col] = nil
	}
	b.squares[pos.Row][pos.Col] = p
	p.Position = pos
}

// Remove clears the given square and returns the piece that occupied it, if
// any. The piece stays registered in its colour list so a capture can be
// reverted.
func (b *Board) Remove(pos Position) *Piece {
	p := b.squares[pos.Row][pos.Col]
	b.squares[pos.Row][pos.Col] = nil
	return p
}

// Pieces returns the live (not captured) pieces of a colour in stable
// insertion order.
func (b *Board) Pieces(colour Colour) []*Piece {
	live := make([]*Piece, 0, len(b.pieces[colour]))
	for _, p := range b.pieces[colour] {
		if !p.Captured {
			live = append(live, p)
		}
	}
	return live
}

// CapturedPieces returns the captured pieces of a colour in capture order.
func (b *Board) CapturedPieces(colour Colour) []*Piece {
	captured := []*Piece{}
	for _, p := range b.pieces[colour] {
		if p.Captured {
			captured = append(captured, p)
		}
	}
	return captured
}

// Rooks returns the live rooks of a colour, used for the castling search.
func (b *Board) Rooks(colour Colour) []*Piece {
	var rooks []*Piece
	for _, p := range b.pieces[colour] {
		if !p.Captured && p.Type == Rook {
			rooks = append(rooks, p)
		}
	}
	return rooks
}

func (b *Board) King(colour Colour) *Piece {
	return b.kings[colour]
}

// emptyBetween reports whether every square strictly between two positions on
// the same row is empty.
func (b *Board) emptyBetween(a, c Position) bool {
	lo, hi := a.Col, c.Col
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo + 1; col < hi; col++ {
		if b.squares[a.Row][col] != nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board. Piece list order is preserved so
// move generation on the clone matches the original.
func (b *Board) Clone() *Board {
	nb := NewBoard()
	for _, colour := range []Colour{White, Black} {
		for _, p := range b.pieces[colour] {
			cp := *p
			nb.pieces[colour] = append(nb.pieces[colour], &cp)
			if cp.Type == King {
				nb.kings[colour] = &cp
			}
			if !cp.Captured {
				nb.squares[cp.Position.Row][cp.Position.Col] = &cp
			}
		}
	}
	return nb
}

// Grid returns the board as a row-major grid for snapshots.
func (b *Board) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for row := 0; row < 8; row++ {
		grid[row] = make([]*Piece, 8)
		copy(grid[row], b.squares[row][:])
	}
	return grid
}

// Placement returns the FEN piece-placement field for the current position,
// used for display and for comparing positions in tests.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.squares[row][col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Type.fenLetter(p.Colour))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.squares[row][col]; p != nil {
				sb.WriteByte(p.Type.fenLetter(p.Colour))
			} else {
				sb.WriteByte('.')
			}
			if col < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
