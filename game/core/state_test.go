package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectPieceOwnership(t *testing.T) {
	b := InitializeBoard()
	s := NewGameState()
	require.Equal(t, White, s.CurrentPlayer)
	require.Equal(t, AwaitingSelection, s.Phase())

	// black piece on white's turn
	require.Equal(t, s, SelectPiece(s, b, 0, 1))
	// empty and off-board cells
	require.Equal(t, s, SelectPiece(s, b, 4, 1))
	require.Equal(t, s, SelectPiece(s, b, 9, 9))

	s = SelectPiece(s, b, 5, 0)
	require.Equal(t, AwaitingDestination, s.Phase())
	require.Equal(t, &Position{Row: 5, Col: 0}, s.Selection)

	// opposing piece with a selection in place keeps the selection
	require.Equal(t, s, SelectPiece(s, b, 2, 1))

	// reselecting replaces
	s = SelectPiece(s, b, 5, 2)
	require.Equal(t, &Position{Row: 5, Col: 2}, s.Selection)
	require.Equal(t, 2, s.Version)
}

func TestAttemptMoveSimple(t *testing.T) {
	b := InitializeBoard()
	before := b.String()
	s := SelectPiece(NewGameState(), b, 5, 2)

	out := AttemptMove(s, b, 4, 3)
	require.True(t, out.Accepted())
	require.Nil(t, out.Captured)
	require.Equal(t, Move{From: Position{5, 2}, To: Position{4, 3}}, *out.Move)

	require.Equal(t, Black, out.State.CurrentPlayer)
	require.Nil(t, out.State.Selection)
	require.Equal(t, AwaitingSelection, out.State.Phase())
	require.Equal(t, NoResult, out.State.Result)
	require.Equal(t, s.Version+1, out.State.Version)

	_, ok := out.Board.PieceAt(4, 3)
	require.True(t, ok)
	_, ok = out.Board.PieceAt(5, 2)
	require.False(t, ok)
	require.Equal(t, before, b.String(), "input board must not change")
}

func TestAttemptMoveRejectsSilently(t *testing.T) {
	b := InitializeBoard()
	s := NewGameState()

	out := AttemptMove(s, b, 4, 1)
	require.False(t, out.Accepted(), "nothing selected")
	require.Same(t, b, out.Board)
	require.Equal(t, s, out.State)

	s = SelectPiece(s, b, 5, 2)
	for _, to := range []Position{
		{3, 2},  // two rows, no enemy
		{4, 2},  // straight up
		{6, 1},  // occupied
		{5, 3},  // sideways
		{-1, 0}, // off board
		{4, 8},  // off board
	} {
		out := AttemptMove(s, b, to.Row, to.Col)
		require.False(t, out.Accepted(), "destination %s", to)
		require.Same(t, b, out.Board)
		require.Equal(t, s, out.State)
		require.Nil(t, out.Captured)
	}
}

func TestAttemptMoveCaptureScenario(t *testing.T) {
	b := mustBoard(t,
		"........",
		"........",
		"........",
		"........",
		"...b....",
		"....w...",
		"........",
		"........",
	)
	s := SelectPiece(NewGameState(), b, 5, 4)

	out := AttemptMove(s, b, 3, 2)
	require.True(t, out.Accepted())
	require.NotNil(t, out.Captured)
	require.Equal(t, Piece{Color: Black, Row: 4, Col: 3}, *out.Captured)
	require.True(t, out.Move.IsCapture())

	require.Equal(t, 1, out.Board.CountByColor(White))
	require.Equal(t, 0, out.Board.CountByColor(Black))
	p, ok := out.Board.PieceAt(3, 2)
	require.True(t, ok)
	require.Equal(t, White, p.Color)

	require.Equal(t, WhiteWins, out.State.Result)
	require.Equal(t, GameOver, out.State.Phase())
}

func TestGameOverIgnoresInput(t *testing.T) {
	b := mustBoard(t,
		"........",
		"........",
		"........",
		"........",
		"...b....",
		"....w...",
		"........",
		"........",
	)
	out := AttemptMove(SelectPiece(NewGameState(), b, 5, 4), b, 3, 2)
	require.Equal(t, GameOver, out.State.Phase())

	// force white to move again on the finished game
	s := out.State
	s.CurrentPlayer = White
	require.Equal(t, s, SelectPiece(s, out.Board, 3, 2))

	s.Selection = &Position{Row: 3, Col: 2}
	again := AttemptMove(s, out.Board, 2, 1)
	require.False(t, again.Accepted())
}

func TestImmobilizedOpponentDrawsAfterMove(t *testing.T) {
	b := mustBoard(t,
		"........",
		"........",
		"........",
		"........",
		".....w..",
		"........",
		"........",
		"b.......",
	)
	g := NewGameFrom(b, White)
	require.True(t, g.Select(4, 5))
	out := g.MoveTo(3, 4)
	require.True(t, out.Accepted())

	require.True(t, PlayerHasAnyMove(g.Board(), White))
	require.Equal(t, Draw, g.State().Result)
	require.Equal(t, GameOver, g.State().Phase())
}
