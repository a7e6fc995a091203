package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/baweed/shashki/game/core"
	"github.com/baweed/shashki/game/msgcat"
	"github.com/baweed/shashki/game/obslog"
)

// Console plays a hot-seat game over a line-oriented terminal.
type Console struct {
	game *core.Game
	cat  *msgcat.Catalog
	in   *bufio.Scanner
	out  io.Writer
}

func New(game *core.Game, cat *msgcat.Catalog, in io.Reader, out io.Writer) *Console {
	return &Console{
		game: game,
		cat:  cat,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run reads commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.printBoard()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.prompt()
		if !c.in.Scan() {
			return c.in.Err()
		}
		if quit := c.handle(strings.TrimSpace(c.in.Text())); quit {
			return nil
		}
	}
}

func (c *Console) handle(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		c.println(c.cat.Text("console.help", nil))
	case "board":
		c.printBoard()
	case "reset":
		c.game.Reset()
		c.printBoard()
	case "select", "move", "click":
		row, col, ok := parseCell(fields[1:])
		if !ok {
			c.println(c.cat.Text("console.help", nil))
			return false
		}
		c.apply(fields[0], row, col)
	default:
		row, col, ok := parseCell(fields)
		if !ok {
			c.println(c.cat.Text("console.unknown", map[string]any{"Input": line}))
			return false
		}
		c.apply("click", row, col)
	}
	return false
}

func (c *Console) apply(cmd string, row, col int) {
	var accepted bool
	switch cmd {
	case "select":
		accepted = c.game.Select(row, col)
	case "move":
		accepted = c.game.MoveTo(row, col).Accepted()
	default:
		act, _ := c.game.Click(row, col)
		accepted = act != core.ActionIgnored
	}
	if !accepted {
		c.println(c.cat.Text("console.ignored", nil))
		return
	}
	obslog.L().Debug("console_command", zap.String("cmd", cmd), zap.Int("row", row), zap.Int("col", col))
	c.printBoard()
}

func parseCell(args []string) (int, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, false
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// printBoard draws the grid with coordinates. The selected piece is upper
// case and its legal destinations are marked '*'.
func (c *Console) printBoard() {
	s := c.game.Snapshot()
	targets := make(map[core.Position]bool, len(s.Targets))
	for _, m := range s.Targets {
		targets[m.To] = true
	}

	var b strings.Builder
	b.WriteString("  0 1 2 3 4 5 6 7\n")
	for y := 0; y < core.BoardSize; y++ {
		fmt.Fprintf(&b, "%d", y)
		for x := 0; x < core.BoardSize; x++ {
			pos := core.Position{Row: y, Col: x}
			ch := "."
			switch s.Board[y][x] {
			case core.Black:
				ch = "b"
			case core.White:
				ch = "w"
			default:
				if targets[pos] {
					ch = "*"
				}
			}
			if s.Selection != nil && *s.Selection == pos {
				ch = strings.ToUpper(ch)
			}
			b.WriteString(" " + ch)
		}
		b.WriteByte('\n')
	}
	if banner := c.cat.Banner(s.Result); banner != "" {
		b.WriteString(banner + "\n")
	} else {
		b.WriteString(c.cat.Turn(s.CurrentPlayer) + "\n")
	}
	io.WriteString(c.out, b.String())
}

func (c *Console) prompt() {
	s := c.game.State()
	if s.Result.Terminal() {
		io.WriteString(c.out, "> ")
		return
	}
	io.WriteString(c.out, c.cat.Text("console.prompt", map[string]any{"Side": c.cat.Side(s.CurrentPlayer)}))
}

func (c *Console) println(s string) {
	io.WriteString(c.out, s+"\n")
}
