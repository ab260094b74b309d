package model

// SafePosition reports whether no enemy piece of the given colour's opponent
// attacks or covers pos.
func SafePosition(b *Board, colour Colour, pos Position) bool {
	for _, enemy := range b.Pieces(colour.Opponent()) {
		if CanBeCapturedAt(b, enemy, pos) || Covers(b, enemy, pos) {
			return false
		}
	}
	return true
}

// KingInCheck reports whether the king of the given colour is attacked by
// any enemy piece.
func KingInCheck(b *Board, colour Colour) bool {
	king := b.King(colour)
	if king == nil {
		return false
	}
	return !SafePosition(b, colour, king.Position)
}

// CanMakeAMove reports whether any piece of the given colour has at least
// one legal move.
func CanMakeAMove(b *Board, colour Colour) bool {
	for _, p := range b.Pieces(colour) {
		if len(LegalMoves(b, p)) > 0 {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the given colour is in check with no legal
// move for any of its pieces.
func InCheckmate(b *Board, colour Colour) bool {
	return KingInCheck(b, colour) && !CanMakeAMove(b, colour)
}

// InStalemate reports whether the given colour is not in check and has no
// legal move for any of its pieces.
func InStalemate(b *Board, colour Colour) bool {
	return !KingInCheck(b, colour) && !CanMakeAMove(b, colour)
}
