package core

var captureDirs = [4][2]int{{-2, -2}, {-2, 2}, {2, -2}, {2, 2}}

// IsSimpleMove reports whether p may step one square diagonally forward to
// (toRow, toCol). Simple moves never go backward.
func IsSimpleMove(b *Board, p Piece, toRow, toCol int) bool {
	to := Position{Row: toRow, Col: toCol}
	if !to.OnBoard() || b.occupied(toRow, toCol) {
		return false
	}
	dy := toRow - p.Row
	dx := toCol - p.Col
	return abs(dx) == 1 && dy == p.Color.forward()
}

// CaptureTarget reports whether p may jump to (toRow, toCol) and returns the
// enemy piece that would be taken. Jumps are allowed in every diagonal
// direction.
func CaptureTarget(b *Board, p Piece, toRow, toCol int) (Piece, bool) {
	to := Position{Row: toRow, Col: toCol}
	if !to.OnBoard() || b.occupied(toRow, toCol) {
		return Piece{}, false
	}
	dy := toRow - p.Row
	dx := toCol - p.Col
	if abs(dx) != 2 || abs(dy) != 2 {
		return Piece{}, false
	}
	mid, ok := b.PieceAt(p.Row+dy/2, p.Col+dx/2)
	if !ok || mid.Color != p.Color.Opponent() {
		return Piece{}, false
	}
	return mid, true
}

// PlayerHasAnyMove reports whether any piece of color has a simple step or a
// jump available. It stops at the first one found.
func PlayerHasAnyMove(b *Board, color Color) bool {
	for _, p := range b.Pieces(color) {
		if pieceHasMove(b, p) {
			return true
		}
	}
	return false
}

func pieceHasMove(b *Board, p Piece) bool {
	dy := p.Color.forward()
	for _, dx := range [2]int{-1, 1} {
		if IsSimpleMove(b, p, p.Row+dy, p.Col+dx) {
			return true
		}
	}
	for _, d := range captureDirs {
		if _, ok := CaptureTarget(b, p, p.Row+d[0], p.Col+d[1]); ok {
			return true
		}
	}
	return false
}

// LegalMoves lists every destination available to p, simple steps first.
func LegalMoves(b *Board, p Piece) []Move {
	var moves []Move
	from := p.Position()
	dy := p.Color.forward()
	for _, dx := range [2]int{-1, 1} {
		if IsSimpleMove(b, p, p.Row+dy, p.Col+dx) {
			moves = append(moves, Move{From: from, To: Position{Row: p.Row + dy, Col: p.Col + dx}})
		}
	}
	for _, d := range captureDirs {
		to := Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if enemy, ok := CaptureTarget(b, p, to.Row, to.Col); ok {
			captured := enemy
			moves = append(moves, Move{From: from, To: to, Captured: &captured})
		}
	}
	return moves
}
