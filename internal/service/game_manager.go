package service

import (
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/jmaassen/gambit-backend/internal/agent"
	"github.com/jmaassen/gambit-backend/internal/model"
	"github.com/pkg/errors"
)

// GameOptions is what callers specify when creating a game.
type GameOptions struct {
	FEN         string           `json:"fen"`
	White       model.PlayerKind `json:"white"`
	Black       model.PlayerKind `json:"black"`
	SearchDepth int              `json:"searchDepth"`
}

// GameManager owns all live game sessions.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

// CreateGame builds a new game session with a fresh ID and a readable name,
// wires in a search agent if either seat is engine-controlled, and starts it.
func (gm *GameManager) CreateGame(opts GameOptions) (*model.Game, error) {
	cfg := model.GameConfig{
		FEN:   opts.FEN,
		White: opts.White,
		Black: opts.Black,
	}
	if opts.White == model.PlayerEngine || opts.Black == model.PlayerEngine {
		cfg.Seeker = agent.New(opts.SearchDepth)
	}

	gameID := uuid.New().String()
	game, err := model.NewGame(gameID, petname.Generate(2, "-"), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()

	game.Start()
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

// RemoveGame tears the game down, cancelling any outstanding search.
func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if exists {
		game.Close()
	}
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Colour, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, req model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.HumanPlay(req)
}

func (gm *GameManager) Undo(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo()
}

func (gm *GameManager) Redo(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Redo()
}

func (gm *GameManager) LegalMoves(gameID string, pos model.Position) ([]model.MoveView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMovesFor(pos)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
