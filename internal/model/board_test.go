package model

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signature captures placement, moved flags and captured status of every
// piece, in piece-list order. Two boards with equal signatures are
// indistinguishable to the move generator.
func signature(b *Board) string {
	var sb strings.Builder
	sb.WriteString(b.Placement())
	for _, colour := range []Colour{White, Black} {
		for _, p := range append(b.Pieces(colour), b.CapturedPieces(colour)...) {
			fmt.Fprintf(&sb, "|%s %s %d%d moved=%t captured=%t",
				p.Colour, p.Type, p.Position.Row, p.Position.Col, p.HasMoved, p.Captured)
		}
	}
	return sb.String()
}

func mustParse(t *testing.T, fen string) (*Board, Colour) {
	t.Helper()
	b, toMove, err := ParseFEN(fen)
	require.NoError(t, err)
	return b, toMove
}

func TestBoardPlaceAndRemove(t *testing.T) {
	b := NewBoard()
	rook := &Piece{Type: Rook, Colour: White, Position: Position{Row: 7, Col: 0}}
	king := &Piece{Type: King, Colour: White, Position: Position{Row: 7, Col: 4}}
	blackKing := &Piece{Type: King, Colour: Black, Position: Position{Row: 0, Col: 4}}
	b.Add(rook)
	b.Add(king)
	b.Add(blackKing)

	assert.True(t, b.Occupied(Position{Row: 7, Col: 0}))
	assert.Same(t, rook, b.PieceAt(Position{Row: 7, Col: 0}))
	assert.Same(t, king, b.King(White))
	assert.Same(t, blackKing, b.King(Black))

	b.Place(rook, Position{Row: 4, Col: 0})
	assert.False(t, b.Occupied(Position{Row: 7, Col: 0}), "previous slot must be cleared")
	assert.Equal(t, Position{Row: 4, Col: 0}, rook.Position)

	// Chained placements leave no trail of stale pointers behind.
	b.Place(rook, Position{Row: 4, Col: 5})
	assert.False(t, b.Occupied(Position{Row: 4, Col: 0}))
	assert.Same(t, rook, b.PieceAt(Position{Row: 4, Col: 5}))

	removed := b.Remove(Position{Row: 4, Col: 0})
	assert.Same(t, rook, removed)
	assert.False(t, b.Occupied(Position{Row: 4, Col: 0}))
	// still registered with its colour list
	assert.Len(t, b.Pieces(White), 2)
}

func TestBoardPieceListOrderIsStable(t *testing.T) {
	b, _ := mustParse(t, StartFEN)

	white := b.Pieces(White)
	require.Len(t, white, 16)
	// FEN scan order: pawns on rank 2 come before the back rank.
	assert.Equal(t, Pawn, white[0].Type)
	assert.Equal(t, Rook, white[8].Type)
	assert.Equal(t, King, white[12].Type)
}

func TestBoardClone(t *testing.T) {
	b, _ := mustParse(t, StartFEN)
	clone := b.Clone()

	assert.Equal(t, signature(b), signature(clone))

	// Mutating the clone must not leak into the original.
	pawn := clone.PieceAt(Position{Row: 6, Col: 4})
	mv := NewNormalMove(pawn, Position{Row: 4, Col: 4})
	mv.Apply(clone)
	assert.NotEqual(t, signature(b), signature(clone))
	assert.True(t, b.Occupied(Position{Row: 6, Col: 4}))
}

func TestBoardValidCoordinate(t *testing.T) {
	b := NewBoard()
	assert.True(t, b.IsValidCoordinate(0, 0))
	assert.True(t, b.IsValidCoordinate(7, 7))
	assert.False(t, b.IsValidCoordinate(-1, 0))
	assert.False(t, b.IsValidCoordinate(0, 8))
}

func TestBoardPlacement(t *testing.T) {
	b, _ := mustParse(t, StartFEN)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", b.Placement())

	b2, _ := mustParse(t, BehtingFEN)
	assert.Equal(t, "8/8/7p/3KNN1k/2p4p/8/3P2p1/8", b2.Placement())
}
