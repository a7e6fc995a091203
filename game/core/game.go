package core

// Game bundles a board, its turn state and the moves played so far. It is
// what presentation layers hold on to. Game is not safe for concurrent use.
type Game struct {
	board   *Board
	state   GameState
	history []Move
}

func NewGame() *Game {
	return &Game{
		board: InitializeBoard(),
		state: NewGameState(),
	}
}

// NewGameFrom starts a game on an arbitrary position with first to move.
func NewGameFrom(b *Board, first Color) *Game {
	return &Game{
		board: b.Clone(),
		state: GameState{CurrentPlayer: first},
	}
}

func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// Select reports whether the selection changed.
func (g *Game) Select(row, col int) bool {
	next := SelectPiece(g.state, g.board, row, col)
	changed := next.Version != g.state.Version
	g.state = next
	return changed
}

func (g *Game) MoveTo(row, col int) MoveOutcome {
	out := AttemptMove(g.state, g.board, row, col)
	if out.Accepted() {
		g.board = out.Board
		g.state = out.State
		g.history = append(g.history, *out.Move)
	}
	return out
}

type Action int

const (
	ActionIgnored Action = iota
	ActionSelected
	ActionMoved
)

func (a Action) String() string {
	switch a {
	case ActionSelected:
		return "selected"
	case ActionMoved:
		return "moved"
	default:
		return "ignored"
	}
}

// Click handles a raw click on a cell: a click on a piece is a selection
// attempt, a click on an empty cell is a move attempt for the selected piece.
func (g *Game) Click(row, col int) (Action, MoveOutcome) {
	if _, ok := g.board.PieceAt(row, col); ok {
		if g.Select(row, col) {
			return ActionSelected, MoveOutcome{Board: g.board, State: g.state}
		}
		return ActionIgnored, MoveOutcome{Board: g.board, State: g.state}
	}
	out := g.MoveTo(row, col)
	if out.Accepted() {
		return ActionMoved, out
	}
	return ActionIgnored, out
}

// Reset puts the pieces back and keeps counting versions so that clients can
// tell the new game from a stale one.
func (g *Game) Reset() {
	version := g.state.Version + 1
	g.board = InitializeBoard()
	g.state = NewGameState()
	g.state.Version = version
	g.history = nil
}

// Snapshot is a read-only view of a game, shaped for JSON.
type Snapshot struct {
	Board         [BoardSize][BoardSize]Color `json:"board"`
	CurrentPlayer Color                       `json:"currentPlayer"`
	Selection     *Position                   `json:"selection,omitempty"`
	Targets       []Move                      `json:"targets,omitempty"`
	Phase         Phase                       `json:"phase"`
	Result        Result                      `json:"result"`
	Winner        Color                       `json:"winner"`
	White         int                         `json:"white"`
	Black         int                         `json:"black"`
	LastMove      *Move                       `json:"lastMove,omitempty"`
	MoveCount     int                         `json:"moveCount"`
	Version       int                         `json:"version"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:         g.board.Grid(),
		CurrentPlayer: g.state.CurrentPlayer,
		Phase:         g.state.Phase(),
		Result:        g.state.Result,
		Winner:        g.state.Result.Winner(),
		White:         g.board.CountByColor(White),
		Black:         g.board.CountByColor(Black),
		MoveCount:     len(g.history),
		Version:       g.state.Version,
	}
	if sel := g.state.Selection; sel != nil {
		pos := *sel
		s.Selection = &pos
		if p, ok := g.board.PieceAt(pos.Row, pos.Col); ok {
			s.Targets = LegalMoves(g.board, p)
		}
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		s.LastMove = &last
	}
	return s
}
