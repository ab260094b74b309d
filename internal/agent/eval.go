package agent

import "github.com/jmaassen/gambit-backend/internal/model"

// Piece values in centipawns. The king carries no material value; losing it
// never happens inside a legal search.
var pieceValues = map[model.PieceType]int{
	model.Pawn:   100,
	model.Knight: 320,
	model.Bishop: 330,
	model.Rook:   500,
	model.Queen:  900,
	model.King:   0,
}

// centreBonus rewards pieces on the four centre squares.
const centreBonus = 10

// evaluate scores the position for the given colour: material balance plus a
// small centre-occupation bonus.
func evaluate(b *model.Board, colour model.Colour) int {
	return sideScore(b, colour) - sideScore(b, colour.Opponent())
}

func sideScore(b *model.Board, colour model.Colour) int {
	score := 0
	for _, p := range b.Pieces(colour) {
		score += pieceValues[p.Type]
		if isCentre(p.Position) {
			score += centreBonus
		}
	}
	return score
}

func isCentre(pos model.Position) bool {
	return (pos.Row == 3 || pos.Row == 4) && (pos.Col == 3 || pos.Col == 4)
}
