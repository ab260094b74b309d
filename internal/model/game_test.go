package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seekerFunc adapts a plain function to the MoveSeeker interface.
type seekerFunc func(ctx context.Context, b *Board, colour Colour) (MoveRequest, error)

func (f seekerFunc) BestMove(ctx context.Context, b *Board, colour Colour) (MoveRequest, error) {
	return f(ctx, b, colour)
}

func newHumanGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGame("test-id", "test-game", GameConfig{FEN: fen})
	require.NoError(t, err)
	return g
}

func play(t *testing.T, g *Game, fromRow, fromCol, toRow, toCol int) {
	t.Helper()
	err := g.HumanPlay(MoveRequest{
		From: Position{Row: fromRow, Col: fromCol},
		To:   Position{Row: toRow, Col: toCol},
	})
	require.NoError(t, err)
}

func TestGameUndoRestoresPosition(t *testing.T) {
	g := newHumanGame(t, StartFEN)
	start := g.Placement()

	play(t, g, 6, 4, 4, 4) // e4
	play(t, g, 1, 4, 3, 4) // e5
	play(t, g, 7, 6, 5, 5) // Nf3

	require.NoError(t, g.Undo())
	require.NoError(t, g.Undo())
	require.NoError(t, g.Undo())

	assert.Equal(t, start, g.Placement())
	assert.Equal(t, White, g.ToMove())
	assert.ErrorIs(t, g.Undo(), ErrNothingToUndo)
}

func TestGameRedoReappliesMove(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	play(t, g, 6, 4, 4, 4)
	after := g.Placement()

	require.NoError(t, g.Undo())
	assert.Equal(t, White, g.ToMove())
	require.NoError(t, g.Redo())

	assert.Equal(t, after, g.Placement())
	assert.Equal(t, Black, g.ToMove())
	assert.ErrorIs(t, g.Redo(), ErrNothingToRedo)
}

func TestGameNewMoveDiscardsFuture(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	play(t, g, 6, 4, 4, 4) // e4
	play(t, g, 1, 4, 3, 4) // e5
	require.NoError(t, g.Undo())
	play(t, g, 1, 2, 3, 2) // c5 instead

	assert.ErrorIs(t, g.Redo(), ErrNothingToRedo)

	state := g.GetState()
	assert.Len(t, state.MoveHistory, 2)
	assert.Equal(t, 1, state.AppliedMove)
}

func TestGameRejectsBadRequests(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	// Empty square.
	err := g.HumanPlay(MoveRequest{From: Position{Row: 4, Col: 4}, To: Position{Row: 3, Col: 4}})
	assert.Error(t, err)

	// Not the side to move.
	err = g.HumanPlay(MoveRequest{From: Position{Row: 1, Col: 4}, To: Position{Row: 3, Col: 4}})
	assert.Error(t, err)

	// Out of bounds.
	err = g.HumanPlay(MoveRequest{From: Position{Row: -1, Col: 0}, To: Position{Row: 0, Col: 0}})
	assert.Error(t, err)

	// Not a legal move for the piece.
	err = g.HumanPlay(MoveRequest{From: Position{Row: 6, Col: 4}, To: Position{Row: 3, Col: 4}})
	assert.Error(t, err)

	// Nothing was applied.
	state := g.GetState()
	assert.Empty(t, state.MoveHistory)
	assert.Equal(t, -1, state.AppliedMove)
}

func TestGameDetectsCheckmate(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	// Fool's mate.
	play(t, g, 6, 5, 5, 5) // f3
	play(t, g, 1, 4, 3, 4) // e5
	play(t, g, 6, 6, 4, 6) // g4
	play(t, g, 0, 3, 4, 7) // Qh4#

	over, winner := g.IsGameOver()
	require.True(t, over)
	require.NotNil(t, winner)
	assert.Equal(t, Black, *winner)

	state := g.GetState()
	require.NotNil(t, state.Resolve)
	assert.Equal(t, "checkmate", *state.Resolve)

	err := g.HumanPlay(MoveRequest{From: Position{Row: 7, Col: 6}, To: Position{Row: 5, Col: 5}})
	assert.ErrorIs(t, err, ErrGameOver)

	// Undoing the mating move reopens the game.
	require.NoError(t, g.Undo())
	over, _ = g.IsGameOver()
	assert.False(t, over)
}

func TestGameLegalMovesFor(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	views, err := g.LegalMovesFor(Position{Row: 6, Col: 4})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = g.LegalMovesFor(Position{Row: 4, Col: 4})
	assert.Error(t, err, "empty square")

	_, err = g.LegalMovesFor(Position{Row: 1, Col: 4})
	assert.Error(t, err, "not the side to move")
}

func TestGameAddPlayerFillsSeats(t *testing.T) {
	g := newHumanGame(t, StartFEN)

	c1, err := g.AddPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, White, c1)

	c2, err := g.AddPlayer("bob")
	require.NoError(t, err)
	assert.Equal(t, Black, c2)

	_, err = g.AddPlayer("carol")
	assert.Error(t, err)

	assert.True(t, g.IsPlayerInGame("alice"))
	assert.False(t, g.IsPlayerInGame("carol"))
	assert.False(t, g.CanSpectate())
}

func TestGameEngineReplies(t *testing.T) {
	seeker := seekerFunc(func(ctx context.Context, b *Board, colour Colour) (MoveRequest, error) {
		return MoveRequest{From: Position{Row: 1, Col: 4}, To: Position{Row: 3, Col: 4}}, nil
	})

	g, err := NewGame("test-id", "test-game", GameConfig{
		FEN:    StartFEN,
		White:  PlayerHuman,
		Black:  PlayerEngine,
		Seeker: seeker,
	})
	require.NoError(t, err)
	g.Start()
	defer g.Close()

	play(t, g, 6, 4, 4, 4) // e4, the engine answers e5

	require.Eventually(t, func() bool {
		return len(g.GetState().MoveHistory) == 2
	}, 2*time.Second, 10*time.Millisecond)

	state := g.GetState()
	assert.Equal(t, White, state.ToMove)
	assert.Equal(t, Position{Row: 3, Col: 4}, state.MoveHistory[1].To)
}

func TestGameRejectsInputWhileEngineThinks(t *testing.T) {
	release := make(chan struct{})
	seeker := seekerFunc(func(ctx context.Context, b *Board, colour Colour) (MoveRequest, error) {
		<-release
		return MoveRequest{From: Position{Row: 1, Col: 4}, To: Position{Row: 3, Col: 4}}, nil
	})

	g, err := NewGame("test-id", "test-game", GameConfig{
		FEN:    StartFEN,
		White:  PlayerHuman,
		Black:  PlayerEngine,
		Seeker: seeker,
	})
	require.NoError(t, err)
	g.Start()
	defer g.Close()

	play(t, g, 6, 4, 4, 4)

	// The search is outstanding; play, undo and redo are all rejected.
	err = g.HumanPlay(MoveRequest{From: Position{Row: 6, Col: 3}, To: Position{Row: 4, Col: 3}})
	assert.ErrorIs(t, err, ErrEngineThinking)
	assert.ErrorIs(t, g.Undo(), ErrEngineThinking)
	assert.ErrorIs(t, g.Redo(), ErrEngineThinking)
	assert.True(t, g.GetState().Thinking)

	close(release)
	require.Eventually(t, func() bool {
		return len(g.GetState().MoveHistory) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGameRequiresSeekerForEngineSeat(t *testing.T) {
	_, err := NewGame("test-id", "test-game", GameConfig{
		FEN:   StartFEN,
		Black: PlayerEngine,
	})
	assert.Error(t, err)
}

func TestGameDefaultsToStudyPosition(t *testing.T) {
	g := newHumanGame(t, "")
	b, _ := mustParse(t, BehtingFEN)
	assert.Equal(t, b.Placement(), g.Placement())
	assert.Equal(t, White, g.ToMove())
}
