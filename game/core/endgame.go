package core

type Result int

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Winner returns the winning color, or Empty for a draw or an ongoing game.
func (r Result) Winner() Color {
	switch r {
	case WhiteWins:
		return White
	case BlackWins:
		return Black
	default:
		return Empty
	}
}

func (r Result) Terminal() bool {
	return r != NoResult
}

// EvaluateGameEnd decides whether the position is over. A side without pieces
// loses; a side with pieces but no move ends the game in a draw, whichever
// side it is.
func EvaluateGameEnd(b *Board) Result {
	if b.CountByColor(White) == 0 {
		return BlackWins
	}
	if b.CountByColor(Black) == 0 {
		return WhiteWins
	}

	whiteCanMove := PlayerHasAnyMove(b, White)
	blackCanMove := PlayerHasAnyMove(b, Black)
	if !whiteCanMove || !blackCanMove {
		return Draw
	}
	return NoResult
}
