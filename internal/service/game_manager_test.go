package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmaassen/gambit-backend/internal/model"
)

func TestCreateGame(t *testing.T) {
	gm := NewGameManager()

	game, err := gm.CreateGame(GameOptions{FEN: model.StartFEN})
	require.NoError(t, err)
	assert.NotEmpty(t, game.ID)
	assert.NotEmpty(t, game.Name)

	fetched, err := gm.GetGame(game.ID)
	require.NoError(t, err)
	assert.Same(t, game, fetched)
}

func TestGetGameUnknownID(t *testing.T) {
	gm := NewGameManager()
	_, err := gm.GetGame("no-such-game")
	assert.EqualError(t, err, "game not found")
}

func TestCreateGameEngineSeatGetsAgent(t *testing.T) {
	gm := NewGameManager()
	game, err := gm.CreateGame(GameOptions{
		FEN:   model.StartFEN,
		Black: model.PlayerEngine,
	})
	require.NoError(t, err)
	defer gm.RemoveGame(game.ID)

	state := game.GetState()
	assert.Equal(t, model.PlayerEngine, state.Players.Black.Kind)
	assert.Equal(t, model.PlayerHuman, state.Players.White.Kind)
}

func TestMakeMoveThroughManager(t *testing.T) {
	gm := NewGameManager()
	game, err := gm.CreateGame(GameOptions{FEN: model.StartFEN})
	require.NoError(t, err)

	req := model.MoveRequest{
		From: model.Position{Row: 6, Col: 4},
		To:   model.Position{Row: 4, Col: 4},
	}
	require.NoError(t, gm.MakeMove(game.ID, req))
	assert.Equal(t, model.Black, game.ToMove())

	require.NoError(t, gm.Undo(game.ID))
	assert.Equal(t, model.White, game.ToMove())
	require.NoError(t, gm.Redo(game.ID))
	assert.Equal(t, model.Black, game.ToMove())

	assert.Error(t, gm.MakeMove("no-such-game", req))
}

func TestAddPlayerToGame(t *testing.T) {
	gm := NewGameManager()
	game, err := gm.CreateGame(GameOptions{FEN: model.StartFEN})
	require.NoError(t, err)

	colour, err := gm.AddPlayerToGame(game.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.White, colour)

	colour, err = gm.AddPlayerToGame(game.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.Black, colour)

	_, err = gm.AddPlayerToGame("no-such-game", "carol")
	assert.Error(t, err)
}

func TestLegalMovesThroughManager(t *testing.T) {
	gm := NewGameManager()
	game, err := gm.CreateGame(GameOptions{FEN: model.StartFEN})
	require.NoError(t, err)

	views, err := gm.LegalMoves(game.ID, model.Position{Row: 7, Col: 1})
	require.NoError(t, err)
	assert.Len(t, views, 2, "a knight on its home square has two moves")
}

func TestRemoveGame(t *testing.T) {
	gm := NewGameManager()
	game, err := gm.CreateGame(GameOptions{FEN: model.StartFEN})
	require.NoError(t, err)

	gm.RemoveGame(game.ID)
	_, err = gm.GetGame(game.ID)
	assert.Error(t, err)

	// Removing twice is harmless.
	gm.RemoveGame(game.ID)
}
