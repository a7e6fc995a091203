package core

type Phase int

const (
	AwaitingSelection Phase = iota
	AwaitingDestination
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingDestination:
		return "awaiting_destination"
	case GameOver:
		return "game_over"
	default:
		return "awaiting_selection"
	}
}

// GameState is the turn bookkeeping that goes with a Board. Transitions return
// a new value; Version grows by one on every accepted transition.
type GameState struct {
	CurrentPlayer Color
	Selection     *Position
	Result        Result
	Version       int
}

// NewGameState starts with white to move.
func NewGameState() GameState {
	return GameState{CurrentPlayer: White}
}

func (s GameState) Phase() Phase {
	switch {
	case s.Result.Terminal():
		return GameOver
	case s.Selection != nil:
		return AwaitingDestination
	default:
		return AwaitingSelection
	}
}

// SelectPiece selects the current player's piece at (row, col), replacing any
// earlier selection. Any other cell leaves s unchanged.
func SelectPiece(s GameState, b *Board, row, col int) GameState {
	if s.Phase() == GameOver {
		return s
	}
	p, ok := b.PieceAt(row, col)
	if !ok || p.Color != s.CurrentPlayer {
		return s
	}
	if s.Selection != nil && *s.Selection == p.Position() {
		return s
	}
	next := s
	pos := p.Position()
	next.Selection = &pos
	next.Version++
	return next
}

// MoveOutcome is the result of AttemptMove. Move is nil when the attempt was
// rejected, in which case Board and State are the inputs.
type MoveOutcome struct {
	Board    *Board
	State    GameState
	Captured *Piece
	Move     *Move
}

func (o MoveOutcome) Accepted() bool {
	return o.Move != nil
}

// AttemptMove moves the selected piece to (toRow, toCol) if that is a legal
// simple move or capture. The input board is left untouched; an accepted move
// works on a clone. Illegal destinations are ignored.
func AttemptMove(s GameState, b *Board, toRow, toCol int) MoveOutcome {
	unchanged := MoveOutcome{Board: b, State: s}
	if s.Phase() != AwaitingDestination {
		return unchanged
	}
	piece, ok := b.PieceAt(s.Selection.Row, s.Selection.Col)
	if !ok || piece.Color != s.CurrentPlayer {
		return unchanged
	}

	var captured *Piece
	if !IsSimpleMove(b, piece, toRow, toCol) {
		enemy, ok := CaptureTarget(b, piece, toRow, toCol)
		if !ok {
			return unchanged
		}
		captured = &enemy
	}

	next := b.Clone()
	if captured != nil {
		next.RemovePiece(*captured)
	}
	next.MovePiece(piece, toRow, toCol)

	state := GameState{
		CurrentPlayer: s.CurrentPlayer.Opponent(),
		Result:        EvaluateGameEnd(next),
		Version:       s.Version + 1,
	}
	move := &Move{
		From:     piece.Position(),
		To:       Position{Row: toRow, Col: toCol},
		Captured: captured,
	}
	return MoveOutcome{Board: next, State: state, Captured: captured, Move: move}
}
