package service

import (
	"github.com/gofiber/websocket/v2"
	"github.com/jmaassen/gambit-backend/internal/model"
)

// GameService is the façade the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame creates a new game and returns its ID and display name.
func (gs *GameService) CreateGame(opts GameOptions) (string, string, error) {
	game, err := gs.gameManager.CreateGame(opts)
	if err != nil {
		return "", "", err
	}
	return game.ID, game.Name, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Colour, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, req model.MoveRequest) error {
	return gs.gameManager.MakeMove(gameID, req)
}

func (gs *GameService) HandleUndo(gameID string) error {
	return gs.gameManager.Undo(gameID)
}

func (gs *GameService) HandleRedo(gameID string) error {
	return gs.gameManager.Redo(gameID)
}

func (gs *GameService) LegalMoves(gameID string, pos model.Position) ([]model.MoveView, error) {
	return gs.gameManager.LegalMoves(gameID, pos)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
