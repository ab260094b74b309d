package model

// Per-kind move rules. Each piece kind supplies its geometric candidate
// moves plus two attack primitives:
//
//   - posCanBeCaptured: the piece could move to the target square and capture
//     there, an unoccupied reachable square included;
//   - posIsCovered: the piece defends or attacks the target square regardless
//     of what occupies it.
//
// The check evaluator iterates enemy pieces over these two primitives to
// decide whether a square is safe.
type moveRules struct {
	rawMoves         func(b *Board, p *Piece) []Move
	posCanBeCaptured func(b *Board, p *Piece, target Position) bool
	posIsCovered     func(b *Board, p *Piece, target Position) bool
}

var (
	rookDirs   = []Position{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)

	knightOffsets = []Position{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingOffsets = queenDirs
)

// rulesByKind is populated in init: the king's move generator reaches the
// check evaluator, which dispatches through this map again, so a static map
// literal would form an initialization cycle.
var rulesByKind map[PieceType]moveRules

func init() {
	rulesByKind = map[PieceType]moveRules{
		Pawn: {rawPawnMoves, pawnCanCapture, pawnCovers},
		Knight: {
			offsetMoves(knightOffsets),
			offsetCanCapture(knightOffsets),
			offsetCovers(knightOffsets),
		},
		Bishop: {
			slidingMoves(bishopDirs),
			slidingCanCapture(bishopDirs),
			slidingCovers(bishopDirs),
		},
		Rook: {
			slidingMoves(rookDirs),
			slidingCanCapture(rookDirs),
			slidingCovers(rookDirs),
		},
		Queen: {
			slidingMoves(queenDirs),
			slidingCanCapture(queenDirs),
			slidingCovers(queenDirs),
		},
		King: {rawKingMoves, offsetCanCapture(kingOffsets), offsetCovers(kingOffsets)},
	}
}

// RawMoves returns the geometric candidate moves for a piece, ignoring
// whether they leave the mover's own king in check.
func RawMoves(b *Board, p *Piece) []Move {
	return rulesByKind[p.Type].rawMoves(b, p)
}

// LegalMoves filters RawMoves by simulate-then-check: each candidate is
// applied, the mover's own king queried for safety, and the move reverted.
func LegalMoves(b *Board, p *Piece) []Move {
	raw := RawMoves(b, p)
	legal := make([]Move, 0, len(raw))
	for _, m := range raw {
		m.Apply(b)
		if !KingInCheck(b, p.Colour) {
			legal = append(legal, m)
		}
		m.Revert(b)
	}
	return legal
}

// AllLegalMoves returns every legal move for a colour, in piece-list order
// then geometric candidate order. The ordering is what makes the search
// agent deterministic.
func AllLegalMoves(b *Board, colour Colour) []Move {
	var moves []Move
	for _, p := range b.Pieces(colour) {
		moves = append(moves, LegalMoves(b, p)...)
	}
	return moves
}

// CanBeCapturedAt reports whether p could move to target and capture there.
func CanBeCapturedAt(b *Board, p *Piece, target Position) bool {
	return rulesByKind[p.Type].posCanBeCaptured(b, p, target)
}

// Covers reports whether p defends or attacks target regardless of occupancy.
func Covers(b *Board, p *Piece, target Position) bool {
	return rulesByKind[p.Type].posIsCovered(b, p, target)
}

// moveOrCapture builds the appropriate variant for a destination square that
// is either empty or enemy-occupied.
func moveOrCapture(b *Board, p *Piece, to Position) Move {
	if occupant := b.PieceAt(to); occupant != nil {
		return NewCaptureMove(p, to, occupant)
	}
	return NewNormalMove(p, to)
}

func slidingMoves(dirs []Position) func(b *Board, p *Piece) []Move {
	return func(b *Board, p *Piece) []Move {
		var moves []Move
		for _, dir := range dirs {
			for target := p.Position.offset(dir.Row, dir.Col); target.IsValid(); target = target.offset(dir.Row, dir.Col) {
				occupant := b.PieceAt(target)
				if occupant == nil {
					moves = append(moves, NewNormalMove(p, target))
					continue
				}
				if occupant.Colour != p.Colour {
					moves = append(moves, NewCaptureMove(p, target, occupant))
				}
				break
			}
		}
		return moves
	}
}

// slidingSees reports whether target lies on one of the given rays from p
// with every square strictly between empty. The target square itself may be
// occupied.
func slidingSees(b *Board, p *Piece, dirs []Position, target Position) bool {
	if !target.IsValid() {
		return false
	}
	for _, dir := range dirs {
		for cur := p.Position.offset(dir.Row, dir.Col); cur.IsValid(); cur = cur.offset(dir.Row, dir.Col) {
			if cur == target {
				return true
			}
			if b.Occupied(cur) {
				break
			}
		}
	}
	return false
}

func slidingCanCapture(dirs []Position) func(b *Board, p *Piece, target Position) bool {
	return func(b *Board, p *Piece, target Position) bool {
		if !slidingSees(b, p, dirs, target) {
			return false
		}
		occupant := b.PieceAt(target)
		return occupant == nil || occupant.Colour != p.Colour
	}
}

func slidingCovers(dirs []Position) func(b *Board, p *Piece, target Position) bool {
	return func(b *Board, p *Piece, target Position) bool {
		return slidingSees(b, p, dirs, target)
	}
}

func offsetMoves(offsets []Position) func(b *Board, p *Piece) []Move {
	return func(b *Board, p *Piece) []Move {
		var moves []Move
		for _, off := range offsets {
			target := p.Position.offset(off.Row, off.Col)
			if !target.IsValid() {
				continue
			}
			occupant := b.PieceAt(target)
			if occupant == nil || occupant.Colour != p.Colour {
				moves = append(moves, moveOrCapture(b, p, target))
			}
		}
		return moves
	}
}

func offsetReaches(p *Piece, offsets []Position, target Position) bool {
	if !target.IsValid() {
		return false
	}
	for _, off := range offsets {
		if p.Position.offset(off.Row, off.Col) == target {
			return true
		}
	}
	return false
}

func offsetCanCapture(offsets []Position) func(b *Board, p *Piece, target Position) bool {
	return func(b *Board, p *Piece, target Position) bool {
		if !offsetReaches(p, offsets, target) {
			return false
		}
		occupant := b.PieceAt(target)
		return occupant == nil || occupant.Colour != p.Colour
	}
}

func offsetCovers(offsets []Position) func(b *Board, p *Piece, target Position) bool {
	return func(b *Board, p *Piece, target Position) bool {
		return offsetReaches(p, offsets, target)
	}
}

// forwardDir is the row delta a pawn of the given colour advances by.
func forwardDir(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// rawPawnMoves generates single and double forward advances plus diagonal
// captures. No en passant and no promotion: a pawn that reaches the last
// rank simply stays a pawn.
func rawPawnMoves(b *Board, p *Piece) []Move {
	var moves []Move
	dir := forwardDir(p.Colour)

	one := p.Position.offset(dir, 0)
	if one.IsValid() && !b.Occupied(one) {
		moves = append(moves, NewNormalMove(p, one))
		two := p.Position.offset(2*dir, 0)
		if !p.HasMoved && two.IsValid() && !b.Occupied(two) {
			moves = append(moves, NewNormalMove(p, two))
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := p.Position.offset(dir, dCol)
		if !target.IsValid() {
			continue
		}
		if occupant := b.PieceAt(target); occupant != nil && occupant.Colour != p.Colour {
			moves = append(moves, NewCaptureMove(p, target, occupant))
		}
	}
	return moves
}

// pawnAttacks reports whether target is one of the pawn's two capture
// diagonals. Forward advances do not attack.
func pawnAttacks(p *Piece, target Position) bool {
	if !target.IsValid() {
		return false
	}
	dir := forwardDir(p.Colour)
	return target.Row == p.Position.Row+dir &&
		(target.Col == p.Position.Col-1 || target.Col == p.Position.Col+1)
}

func pawnCanCapture(b *Board, p *Piece, target Position) bool {
	if !pawnAttacks(p, target) {
		return false
	}
	occupant := b.PieceAt(target)
	return occupant == nil || occupant.Colour != p.Colour
}

func pawnCovers(b *Board, p *Piece, target Position) bool {
	return pawnAttacks(p, target)
}

// rawKingMoves generates the king's one-step moves plus any castling moves.
func rawKingMoves(b *Board, p *Piece) []Move {
	moves := offsetMoves(kingOffsets)(b, p)
	return append(moves, castlingMoves(b, p)...)
}

// castlingMoves generates castling candidates: the king and rook must never
// have moved, every square strictly between them must be empty, the king
// must not be in check, and neither the king's destination nor the square it
// passes through may be attacked by an enemy piece.
func castlingMoves(b *Board, king *Piece) []Move {
	if king.HasMoved || KingInCheck(b, king.Colour) {
		return nil
	}
	var moves []Move
	for _, rook := range b.Rooks(king.Colour) {
		if rook.HasMoved || rook.Position.Row != king.Position.Row {
			continue
		}
		if !b.emptyBetween(king.Position, rook.Position) {
			continue
		}
		step := 1
		if rook.Position.Col < king.Position.Col {
			step = -1
		}
		kingTo := king.Position.offset(0, 2*step)
		rookTo := king.Position.offset(0, step)
		if SafePosition(b, king.Colour, kingTo) && SafePosition(b, king.Colour, rookTo) {
			moves = append(moves, NewCastlingMove(king, kingTo, rook, rookTo))
		}
	}
	return moves
}
