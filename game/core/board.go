package core

import (
	"fmt"
	"strings"
)

// Board maps coordinates to pieces. The grid is a value array, so copying a
// Board copies every piece.
type Board struct {
	grid [BoardSize][BoardSize]Color
}

func NewBoard() *Board {
	return &Board{}
}

// InitializeBoard returns the standard starting layout: black on rows 0-2,
// white on rows 5-7, dark squares only.
func InitializeBoard() *Board {
	b := NewBoard()
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			if (i+j)%2 == 0 {
				continue
			}
			if i < 3 {
				b.PlacePiece(Black, i, j)
			} else if i > 4 {
				b.PlacePiece(White, i, j)
			}
		}
	}
	return b
}

func (b *Board) PieceAt(row, col int) (Piece, bool) {
	if !(Position{Row: row, Col: col}).OnBoard() {
		return Piece{}, false
	}
	c := b.grid[row][col]
	if c == Empty {
		return Piece{}, false
	}
	return Piece{Color: c, Row: row, Col: col}, true
}

func (b *Board) occupied(row, col int) bool {
	_, ok := b.PieceAt(row, col)
	return ok
}

// PlacePiece panics when the cell is off-board, light or already taken.
func (b *Board) PlacePiece(color Color, row, col int) {
	pos := Position{Row: row, Col: col}
	switch {
	case !color.valid():
		panic(fmt.Sprintf("core: place %s at %s: not a piece color", color, pos))
	case !pos.OnBoard():
		panic(fmt.Sprintf("core: place %s at %s: off board", color, pos))
	case !pos.Dark():
		panic(fmt.Sprintf("core: place %s at %s: light square", color, pos))
	case b.grid[row][col] != Empty:
		panic(fmt.Sprintf("core: place %s at %s: cell occupied", color, pos))
	}
	b.grid[row][col] = color
}

// RemovePiece panics if p is not on the board.
func (b *Board) RemovePiece(p Piece) {
	if !b.holds(p) {
		panic(fmt.Sprintf("core: remove %s: piece not present", p))
	}
	b.grid[p.Row][p.Col] = Empty
}

// MovePiece relocates p without checking move legality and returns the piece
// at its new coordinates.
func (b *Board) MovePiece(p Piece, toRow, toCol int) Piece {
	to := Position{Row: toRow, Col: toCol}
	switch {
	case !b.holds(p):
		panic(fmt.Sprintf("core: move %s: piece not present", p))
	case !to.OnBoard():
		panic(fmt.Sprintf("core: move %s to %s: off board", p, to))
	case b.occupied(toRow, toCol):
		panic(fmt.Sprintf("core: move %s to %s: cell occupied", p, to))
	}
	b.grid[p.Row][p.Col] = Empty
	b.grid[toRow][toCol] = p.Color
	return Piece{Color: p.Color, Row: toRow, Col: toCol}
}

func (b *Board) holds(p Piece) bool {
	got, ok := b.PieceAt(p.Row, p.Col)
	return ok && got.Color == p.Color
}

func (b *Board) CountByColor(color Color) int {
	n := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.grid[y][x] == color && color != Empty {
				n++
			}
		}
	}
	return n
}

// Pieces lists the pieces of one color in row-major order.
func (b *Board) Pieces(color Color) []Piece {
	var out []Piece
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.grid[y][x] == color && color != Empty {
				out = append(out, Piece{Color: color, Row: y, Col: x})
			}
		}
	}
	return out
}

func (b *Board) Clone() *Board {
	newBoard := *b
	return &newBoard
}

// Grid exposes a copy of the cells, indexed [row][col].
func (b *Board) Grid() [BoardSize][BoardSize]Color {
	return b.grid
}

// String draws the board as eight lines of 'b', 'w' and '.'.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			switch b.grid[y][x] {
			case Black:
				sb.WriteByte('b')
			case White:
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the format produced by String. Spaces are ignored, so rows
// may be written ". b . b . b . b".
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("parse board: want %d rows, got %d", BoardSize, len(rows))
	}
	b := NewBoard()
	for y, raw := range rows {
		row := strings.ReplaceAll(raw, " ", "")
		if len(row) != BoardSize {
			return nil, fmt.Errorf("parse board: row %d: want %d cells, got %d", y, BoardSize, len(row))
		}
		for x, ch := range row {
			var c Color
			switch ch {
			case '.':
				continue
			case 'b', 'B':
				c = Black
			case 'w', 'W':
				c = White
			default:
				return nil, fmt.Errorf("parse board: row %d col %d: unexpected %q", y, x, ch)
			}
			if !(Position{Row: y, Col: x}).Dark() {
				return nil, fmt.Errorf("parse board: piece on light square (%d,%d)", y, x)
			}
			b.grid[y][x] = c
		}
	}
	return b, nil
}
