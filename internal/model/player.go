package model

import "context"

type PlayerKind string

const (
	PlayerHuman  PlayerKind = "human"
	PlayerEngine PlayerKind = "engine"
)

// Seat is one side of the board: who (or what) plays it.
type Seat struct {
	ID     string     `json:"id"`
	Kind   PlayerKind `json:"kind"`
	Colour Colour     `json:"color"`
}

// MoveSeeker picks a move for the given colour. It is handed a private copy
// of the board and must deliver exactly one result; the game resolves the
// returned request against its live legal moves.
type MoveSeeker interface {
	BestMove(ctx context.Context, b *Board, colour Colour) (MoveRequest, error)
}
