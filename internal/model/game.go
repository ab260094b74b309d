package model

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/jmaassen/gambit-backend/internal/ws"
	"github.com/pkg/errors"
)

var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrEngineThinking = errors.New("engine is thinking")
	ErrGameOver       = errors.New("game is over")
)

// GameConfig describes how a new game is set up.
type GameConfig struct {
	FEN    string // empty means the default start position
	White  PlayerKind
	Black  PlayerKind
	Seeker MoveSeeker // required when either seat is engine-controlled
}

// HistoryEntry is one applied move as shown in the GUI's move log.
type HistoryEntry struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Notation string   `json:"notation"`
}

type CapturedPieces struct {
	White []*Piece `json:"white"`
	Black []*Piece `json:"black"`
}

type MoveView struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Notation string   `json:"notation"`
}

// GameState is the full snapshot handed to the GUI collaborator.
type GameState struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Board          [][]*Piece     `json:"board"`
	ToMove         Colour         `json:"toMove"`
	IsCheck        bool           `json:"isCheck"`
	GameOver       bool           `json:"gameOver"`
	Winner         *Colour        `json:"winner"`
	Resolve        *string        `json:"resolve"`
	MoveHistory    []HistoryEntry `json:"moveHistory"`
	AppliedMove    int            `json:"appliedMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Thinking       bool           `json:"thinking"`
	Players        struct {
		White Seat `json:"white"`
		Black Seat `json:"black"`
	} `json:"players"`
	Clocks struct {
		WhiteMs int64 `json:"whiteMs"`
		BlackMs int64 `json:"blackMs"`
	} `json:"clocks"`
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is a single game session: the board, the ordered move list with its
// cursor, the side to move, and the observers. All mutation goes through the
// game mutex; while a search is outstanding, move, undo and redo requests
// are rejected.
type Game struct {
	ID   string
	Name string

	mu          sync.Mutex
	board       *Board
	hasTurn     Colour
	moveList    []Move
	appliedMove int
	winner      *Colour
	resolve     string
	gameOver    bool

	seats  map[Colour]*Seat
	seeker MoveSeeker

	searching    bool
	searchCancel context.CancelFunc

	clocks      map[Colour]*Clock
	connections *GameConnections
}

func NewGame(id, name string, cfg GameConfig) (*Game, error) {
	fen := cfg.FEN
	if fen == "" {
		fen = BehtingFEN
	}
	board, hasTurn, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	whiteKind := cfg.White
	if whiteKind == "" {
		whiteKind = PlayerHuman
	}
	blackKind := cfg.Black
	if blackKind == "" {
		blackKind = PlayerHuman
	}
	if (whiteKind == PlayerEngine || blackKind == PlayerEngine) && cfg.Seeker == nil {
		return nil, errors.New("engine seat configured without a move seeker")
	}

	g := &Game{
		ID:          id,
		Name:        name,
		board:       board,
		hasTurn:     hasTurn,
		appliedMove: -1,
		seats: map[Colour]*Seat{
			White: {Kind: whiteKind, Colour: White},
			Black: {Kind: blackKind, Colour: Black},
		},
		seeker: cfg.Seeker,
		clocks: map[Colour]*Clock{
			White: NewClock(),
			Black: NewClock(),
		},
		connections: NewGameConnections(),
	}
	g.updateGameStatus()
	return g, nil
}

// Start kicks off engine play if the side to move is engine-controlled.
// Called once by the game manager after the game is registered.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.gameOver {
		g.clocks[g.hasTurn].Start()
	}
	g.notifySeeker()
}

// Close cancels any outstanding search and stops the clocks. No partial
// search result is applied after Close.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.searchCancel != nil {
		g.searchCancel()
		g.searchCancel = nil
	}
	g.clocks[White].Stop()
	g.clocks[Black].Stop()
}

// AddPlayer seats a human player on the first free human seat and returns
// the colour they play.
func (g *Game) AddPlayer(playerID string) (Colour, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, colour := range []Colour{White, Black} {
		seat := g.seats[colour]
		if seat.Kind == PlayerHuman && seat.ID == "" {
			seat.ID = playerID
			return colour, nil
		}
	}
	return "", errors.New("game is full")
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	for _, seat := range g.seats {
		if seat.ID != "" && seat.ID == playerID {
			return true
		}
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	for _, seat := range g.seats {
		if seat.Kind == PlayerHuman && seat.ID == "" {
			return true
		}
	}
	return false
}

// HumanPlay resolves a move request against the current legal moves and
// applies it. A new move discards any previously undone "future" moves.
func (g *Game) HumanPlay(req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver {
		return ErrGameOver
	}
	if g.searching {
		return ErrEngineThinking
	}
	if g.seats[g.hasTurn].Kind != PlayerHuman {
		return errors.Errorf("%s is engine-controlled", g.hasTurn)
	}
	mv, err := g.resolveMove(req)
	if err != nil {
		return err
	}
	g.removeObsoleteMoves()
	g.moveList = append(g.moveList, mv)
	g.doMove()
	return nil
}

// Undo reverts the move at the cursor. It never triggers engine play.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.searching {
		return ErrEngineThinking
	}
	if g.appliedMove < 0 {
		return ErrNothingToUndo
	}
	g.clocks[g.hasTurn].Stop()
	g.moveList[g.appliedMove].Revert(g.board)
	g.appliedMove--
	g.updateTurn()
	g.updateGameStatus()
	if !g.gameOver {
		g.clocks[g.hasTurn].Start()
	}
	go g.broadcastState()
	return nil
}

// Redo re-applies the next move in the list, if one exists.
func (g *Game) Redo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.searching {
		return ErrEngineThinking
	}
	if g.appliedMove+1 >= len(g.moveList) {
		return ErrNothingToRedo
	}
	g.doMove()
	return nil
}

// resolveMove maps a from/to request onto one of the current legal moves.
func (g *Game) resolveMove(req MoveRequest) (Move, error) {
	if !req.From.IsValid() || !req.To.IsValid() {
		return nil, errors.New("invalid move: out of bounds")
	}
	piece := g.board.PieceAt(req.From)
	if piece == nil {
		return nil, errors.Errorf("no piece on %s", req.From.getSquareNotation())
	}
	if piece.Colour != g.hasTurn {
		return nil, errors.Errorf("piece on %s does not belong to the side to move", req.From.getSquareNotation())
	}
	for _, mv := range LegalMoves(g.board, piece) {
		if mv.To() == req.To {
			return mv, nil
		}
	}
	return nil, errors.Errorf("%s to %s is not a legal move", req.From.getSquareNotation(), req.To.getSquareNotation())
}

// doMove applies the move at cursor+1, advances the cursor, flips the turn,
// recomputes the terminal state, and hands the turn to the engine when its
// side is up. When both seats are engine-controlled, redoing into the past
// must not resume autoplay until the cursor reaches the end of the list.
func (g *Game) doMove() {
	mv := g.moveList[g.appliedMove+1]
	mv.Apply(g.board)
	g.appliedMove++
	g.clocks[g.hasTurn].Stop()
	g.updateTurn()
	g.updateGameStatus()
	if !g.gameOver {
		g.clocks[g.hasTurn].Start()
	}
	go g.broadcastState()

	bothEngines := g.seats[White].Kind == PlayerEngine && g.seats[Black].Kind == PlayerEngine
	if !bothEngines || g.appliedMove+1 == len(g.moveList) {
		g.notifySeeker()
	}
}

// removeObsoleteMoves discards moves beyond the cursor: a new move
// invalidates the previously redoable future.
func (g *Game) removeObsoleteMoves() {
	if g.appliedMove < len(g.moveList)-1 {
		g.moveList = g.moveList[:g.appliedMove+1]
	}
}

func (g *Game) updateTurn() {
	g.hasTurn = g.hasTurn.Opponent()
}

// updateGameStatus recomputes check flags and the terminal state. Updates
// are atomic relative to a single move application since the game mutex is
// held throughout.
func (g *Game) updateGameStatus() {
	for _, colour := range []Colour{White, Black} {
		if king := g.board.King(colour); king != nil {
			king.InCheck = KingInCheck(g.board, colour)
		}
	}
	switch {
	case InCheckmate(g.board, g.hasTurn):
		winner := g.hasTurn.Opponent()
		g.winner = &winner
		g.gameOver = true
		g.resolve = "checkmate"
	case InStalemate(g.board, g.hasTurn):
		g.winner = nil
		g.gameOver = true
		g.resolve = "stalemate"
	default:
		g.winner = nil
		g.gameOver = false
		g.resolve = ""
	}
}

// notifySeeker launches a background search for the side to move if that
// seat is engine-controlled. At most one search is outstanding at a time;
// the result is delivered back exactly once, under the game mutex.
func (g *Game) notifySeeker() {
	if g.gameOver || g.searching {
		return
	}
	if g.seats[g.hasTurn].Kind != PlayerEngine {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.searching = true
	g.searchCancel = cancel
	colour := g.hasTurn
	snapshot := g.board.Clone()

	go func() {
		req, err := g.seeker.BestMove(ctx, snapshot, colour)

		g.mu.Lock()
		defer g.mu.Unlock()
		g.searching = false
		g.searchCancel = nil
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("game %s: engine move failed: %v", g.ID, err)
			return
		}
		mv, err := g.resolveMove(req)
		if err != nil {
			log.Printf("game %s: engine returned unplayable move: %v", g.ID, err)
			return
		}
		g.moveList = append(g.moveList, mv)
		g.doMove()
	}()
}

// LegalMovesFor returns the legal moves for the piece on the given square.
// Requests for an empty square or for a piece of the side not to move are
// rejected without mutating anything.
func (g *Game) LegalMovesFor(pos Position) ([]MoveView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !pos.IsValid() {
		return nil, errors.New("position out of bounds")
	}
	piece := g.board.PieceAt(pos)
	if piece == nil {
		return nil, errors.Errorf("no piece on %s", pos.getSquareNotation())
	}
	if piece.Colour != g.hasTurn {
		return nil, errors.Errorf("piece on %s does not belong to the side to move", pos.getSquareNotation())
	}
	moves := LegalMoves(g.board, piece)
	views := make([]MoveView, 0, len(moves))
	for _, mv := range moves {
		views = append(views, MoveView{From: mv.From(), To: mv.To(), Notation: mv.Notation()})
	}
	return views, nil
}

// IsGameOver returns the terminal state and the winner, nil on a draw or a
// game still in progress.
func (g *Game) IsGameOver() (bool, *Colour) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameOver, g.winner
}

// ToMove returns the colour to move.
func (g *Game) ToMove() Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hasTurn
}

// Placement returns the FEN placement field of the current position.
func (g *Game) Placement() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Placement()
}

// GetState builds the full snapshot for the GUI collaborator.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildState()
}

func (g *Game) buildState() GameState {
	state := GameState{
		ID:          g.ID,
		Name:        g.Name,
		Board:       g.board.Grid(),
		ToMove:      g.hasTurn,
		IsCheck:     KingInCheck(g.board, g.hasTurn),
		GameOver:    g.gameOver,
		Winner:      g.winner,
		AppliedMove: g.appliedMove,
		Thinking:    g.searching,
		CapturedPieces: CapturedPieces{
			White: g.board.CapturedPieces(White),
			Black: g.board.CapturedPieces(Black),
		},
	}
	if g.resolve != "" {
		resolve := g.resolve
		state.Resolve = &resolve
	}
	state.MoveHistory = make([]HistoryEntry, 0, len(g.moveList))
	for _, mv := range g.moveList {
		state.MoveHistory = append(state.MoveHistory, HistoryEntry{
			From:     mv.From(),
			To:       mv.To(),
			Notation: mv.Notation(),
		})
	}
	state.Players.White = *g.seats[White]
	state.Players.Black = *g.seats[Black]
	state.Clocks.WhiteMs = g.clocks[White].Elapsed().Milliseconds()
	state.Clocks.BlackMs = g.clocks[Black].Elapsed().Milliseconds()
	return state
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
