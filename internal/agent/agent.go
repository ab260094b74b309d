// Package agent implements the search agent: a depth-limited minimax with
// alpha-beta cutoffs over the move generator. For a fixed board and depth the
// agent is deterministic: ties are broken by the first-encountered move in
// generation order.
package agent

import (
	"context"

	"github.com/jmaassen/gambit-backend/internal/model"
	"github.com/pkg/errors"
)

const (
	// Infinity bounds the alpha-beta window.
	Infinity = 1 << 20
	// MateScore is the base score for a forced mate; it is raised by the
	// remaining depth so that faster mates score higher.
	MateScore = 1 << 19

	// DefaultDepth is the search depth used when a game does not configure one.
	DefaultDepth = 3
)

// ErrNoLegalMoves means the agent was invoked on a terminal position. The
// caller must check the terminal state first; this is a contract violation,
// not a normal failure path.
var ErrNoLegalMoves = errors.New("search agent invoked with no legal moves")

type Agent struct {
	depth int
}

func New(depth int) *Agent {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Agent{depth: depth}
}

// BestMove runs the search on the given board, which must be a private copy:
// the search applies and reverts moves on it directly. The context cancels
// the search cooperatively; a cancelled search returns no result.
func (a *Agent) BestMove(ctx context.Context, b *model.Board, colour model.Colour) (model.MoveRequest, error) {
	moves := model.AllLegalMoves(b, colour)
	if len(moves) == 0 {
		return model.MoveRequest{}, ErrNoLegalMoves
	}

	best := moves[0]
	bestScore := -Infinity
	for _, mv := range moves {
		if err := ctx.Err(); err != nil {
			return model.MoveRequest{}, err
		}
		mv.Apply(b)
		score := -a.search(ctx, b, colour.Opponent(), a.depth-1, -Infinity, -bestScore)
		mv.Revert(b)
		if score > bestScore {
			bestScore = score
			best = mv
		}
	}
	if err := ctx.Err(); err != nil {
		return model.MoveRequest{}, err
	}
	return model.MoveRequest{From: best.From(), To: best.To()}, nil
}

// search evaluates the position for the side to move, negamax style: each
// level maximizes its own score, which is the negation of the opponent's.
// Terminal positions are scored before the depth cutoff so mates and
// stalemates inside the horizon are seen exactly.
func (a *Agent) search(ctx context.Context, b *model.Board, colour model.Colour, depth, alpha, beta int) int {
	if ctx.Err() != nil {
		return alpha
	}

	moves := model.AllLegalMoves(b, colour)
	if len(moves) == 0 {
		if model.KingInCheck(b, colour) {
			return -(MateScore + depth)
		}
		return 0
	}
	if depth == 0 {
		return evaluate(b, colour)
	}

	best := -Infinity
	for _, mv := range moves {
		mv.Apply(b)
		score := -a.search(ctx, b, colour.Opponent(), depth-1, -beta, -max(alpha, best))
		mv.Revert(b)
		if score > best {
			best = score
		}
		if best >= beta {
			break
		}
	}
	return best
}
