package core

import "fmt"

const BoardSize = 8

type Color int

const (
	Empty Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// forward is the row delta of a simple move: white goes up the board, black goes down.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) valid() bool {
	return c == Black || c == White
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Dark reports whether the square is playable.
func (p Position) Dark() bool {
	return (p.Row+p.Col)%2 != 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Piece struct {
	Color Color `json:"color"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
}

func (p Piece) Position() Position {
	return Position{Row: p.Row, Col: p.Col}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s%s", p.Color, p.Position())
}

type Move struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured *Piece   `json:"captured,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
