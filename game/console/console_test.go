package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baweed/shashki/game/core"
	"github.com/baweed/shashki/game/msgcat"
)

func run(t *testing.T, g *core.Game, locale, script string) string {
	t.Helper()
	cat, err := msgcat.New(locale, "")
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, New(g, cat, strings.NewReader(script), &out).Run(context.Background()))
	return out.String()
}

func TestConsolePlaysMoves(t *testing.T) {
	g := core.NewGame()
	out := run(t, g, "en", "select 5 2\nmove 4 3\n2 5\n3 4\nquit\n4 3\n")

	require.Contains(t, out, "White to move")
	require.Contains(t, out, "Black to move")
	require.Equal(t, 2, len(g.History()), "lines after quit are not read")
	require.Equal(t, core.White, g.State().CurrentPlayer)
}

func TestConsoleMarksSelectionAndTargets(t *testing.T) {
	g := core.NewGame()
	out := run(t, g, "en", "select 5 2\n")

	require.Contains(t, out, "4 . * . * . . . .")
	require.Contains(t, out, "5 w . W . w . w .")
}

func TestConsoleIgnoresIllegalInput(t *testing.T) {
	g := core.NewGame()
	out := run(t, g, "ru", "select 2 1\nmove 4 4\nfly away\nselect x y\n\n")

	require.Contains(t, out, "ход не принят")
	require.Contains(t, out, "неизвестная команда: fly away")
	require.Contains(t, out, "команды:")
	require.Empty(t, g.History())
	require.Nil(t, g.State().Selection)
}

func TestConsoleShowsBanner(t *testing.T) {
	b, err := core.ParseBoard(
		"........",
		"........",
		"........",
		"........",
		"...b....",
		"....w...",
		"........",
		"........",
	)
	require.NoError(t, err)
	g := core.NewGameFrom(b, core.White)

	out := run(t, g, "ru", "5 4\n3 2\n5 4\n")
	require.Contains(t, out, "Белые победили!")
	require.Equal(t, core.GameOver, g.State().Phase())
	require.Len(t, g.History(), 1)
}

func TestConsoleReset(t *testing.T) {
	g := core.NewGame()
	run(t, g, "en", "5 0\n4 1\nreset\n")
	require.Empty(t, g.History())
	require.Equal(t, core.InitializeBoard().String(), g.Board().String())
}

func TestConsoleStopsOnCancelledContext(t *testing.T) {
	cat, err := msgcat.New("en", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = New(core.NewGame(), cat, strings.NewReader("5 0\n"), &out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
