package model

import "fmt"

// Move is a reversible board command. Revert is the exact inverse of Apply:
// it restores piece placement, captured status and moved flags to their prior
// values, which lets the legality filter and the search agent explore moves
// on the live board without copying it.
type Move interface {
	Apply(b *Board)
	Revert(b *Board)
	Piece() *Piece
	From() Position
	To() Position
	Notation() string
}

// MoveRequest is a from/to pair as submitted by the GUI collaborator or
// produced by the search agent. It is resolved against the current legal
// moves before anything is applied.
type MoveRequest struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// NormalMove moves a piece to an empty square.
type NormalMove struct {
	piece    *Piece
	from     Position
	to       Position
	hadMoved bool
}

func NewNormalMove(p *Piece, to Position) *NormalMove {
	return &NormalMove{piece: p, from: p.Position, to: to}
}

func (m *NormalMove) Apply(b *Board) {
	m.hadMoved = m.piece.HasMoved
	b.Remove(m.from)
	b.Place(m.piece, m.to)
	m.piece.HasMoved = true
}

func (m *NormalMove) Revert(b *Board) {
	b.Remove(m.to)
	b.Place(m.piece, m.from)
	m.piece.HasMoved = m.hadMoved
}

func (m *NormalMove) Piece() *Piece  { return m.piece }
func (m *NormalMove) From() Position { return m.from }
func (m *NormalMove) To() Position   { return m.to }

func (m *NormalMove) Notation() string {
	return fmt.Sprintf("%s%s", m.piece.Type.getPieceNotation(), m.to.getSquareNotation())
}

// CaptureMove moves a piece onto an enemy-occupied square. The captured piece
// is flagged and retained off the grid so the move can be reverted exactly.
type CaptureMove struct {
	piece    *Piece
	captured *Piece
	from     Position
	to       Position
	hadMoved bool
}

func NewCaptureMove(p *Piece, to Position, captured *Piece) *CaptureMove {
	return &CaptureMove{piece: p, captured: captured, from: p.Position, to: to}
}

func (m *CaptureMove) Apply(b *Board) {
	m.hadMoved = m.piece.HasMoved
	b.Remove(m.from)
	b.Remove(m.to)
	m.captured.Captured = true
	b.Place(m.piece, m.to)
	m.piece.HasMoved = true
}

func (m *CaptureMove) Revert(b *Board) {
	b.Remove(m.to)
	b.Place(m.piece, m.from)
	m.captured.Captured = false
	b.Place(m.captured, m.to)
	m.piece.HasMoved = m.hadMoved
}

func (m *CaptureMove) Piece() *Piece         { return m.piece }
func (m *CaptureMove) From() Position        { return m.from }
func (m *CaptureMove) To() Position          { return m.to }
func (m *CaptureMove) CapturedPiece() *Piece { return m.captured }

func (m *CaptureMove) Notation() string {
	prefix := m.piece.Type.getPieceNotation()
	if m.piece.Type == Pawn {
		prefix = m.from.getFileNotation()
	}
	return fmt.Sprintf("%sx%s", prefix, m.to.getSquareNotation())
}

// CastlingMove moves the king and a rook together as one revertible unit.
type CastlingMove struct {
	king         *Piece
	rook         *Piece
	kingFrom     Position
	kingTo       Position
	rookFrom     Position
	rookTo       Position
	kingHadMoved bool
	rookHadMoved bool
}

func NewCastlingMove(king *Piece, kingTo Position, rook *Piece, rookTo Position) *CastlingMove {
	return &CastlingMove{
		king:     king,
		rook:     rook,
		kingFrom: king.Position,
		kingTo:   kingTo,
		rookFrom: rook.Position,
		rookTo:   rookTo,
	}
}

func (m *CastlingMove) Apply(b *Board) {
	m.kingHadMoved = m.king.HasMoved
	m.rookHadMoved = m.rook.HasMoved
	b.Remove(m.kingFrom)
	b.Remove(m.rookFrom)
	b.Place(m.king, m.kingTo)
	b.Place(m.rook, m.rookTo)
	m.king.HasMoved = true
	m.rook.HasMoved = true
}

func (m *CastlingMove) Revert(b *Board) {
	b.Remove(m.kingTo)
	b.Remove(m.rookTo)
	b.Place(m.king, m.kingFrom)
	b.Place(m.rook, m.rookFrom)
	m.king.HasMoved = m.kingHadMoved
	m.rook.HasMoved = m.rookHadMoved
}

func (m *CastlingMove) Piece() *Piece    { return m.king }
func (m *CastlingMove) From() Position   { return m.kingFrom }
func (m *CastlingMove) To() Position     { return m.kingTo }
func (m *CastlingMove) Rook() *Piece     { return m.rook }
func (m *CastlingMove) RookTo() Position { return m.rookTo }

func (m *CastlingMove) Notation() string {
	if m.kingTo.Col < m.kingFrom.Col {
		return "O-O-O"
	}
	return "O-O"
}
