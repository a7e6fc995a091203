package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/baweed/shashki/game/core"
)

const (
	cellSize = 64
	boardPx  = cellSize * core.BoardSize

	MinSize = 64
	MaxSize = 2048
)

var palette = struct {
	light, dark, white, black, outline, selected, target, lastMove string
}{
	light:    "#f0d9b5",
	dark:     "#8b5a2b",
	white:    "#fafafa",
	black:    "#1e1e1e",
	outline:  "#404040",
	selected: "#f5c518",
	target:   "#6fbf73",
	lastMove: "#b08850",
}

// SVG draws the snapshot as a standalone SVG document: squares, pieces, the
// selection ring, legal targets and the squares of the last move.
func SVG(s core.Snapshot) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		boardPx, boardPx, boardPx, boardPx)
	b.WriteByte('\n')

	for y := 0; y < core.BoardSize; y++ {
		for x := 0; x < core.BoardSize; x++ {
			fill := palette.light
			if (core.Position{Row: y, Col: x}).Dark() {
				fill = palette.dark
			}
			if m := s.LastMove; m != nil && (m.From == (core.Position{Row: y, Col: x}) || m.To == (core.Position{Row: y, Col: x})) {
				fill = palette.lastMove
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				x*cellSize, y*cellSize, cellSize, cellSize, fill)
		}
	}

	for _, m := range s.Targets {
		cx, cy := center(m.To)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`+"\n", cx, cy, cellSize/8, palette.target)
	}

	for y := 0; y < core.BoardSize; y++ {
		for x := 0; x < core.BoardSize; x++ {
			c := s.Board[y][x]
			if c == core.Empty {
				continue
			}
			fill := palette.white
			if c == core.Black {
				fill = palette.black
			}
			stroke, width := palette.outline, 2
			if sel := s.Selection; sel != nil && *sel == (core.Position{Row: y, Col: x}) {
				stroke, width = palette.selected, 5
			}
			cx, cy := center(core.Position{Row: y, Col: x})
			fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
				cx, cy, cellSize*2/5, fill, stroke, width)
		}
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func center(p core.Position) (int, int) {
	return p.Col*cellSize + cellSize/2, p.Row*cellSize + cellSize/2
}

// PNG rasterizes SVG(s) and scales it to size×size pixels.
func PNG(ctx context.Context, s core.Snapshot, size int) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("size %d out of range [%d,%d]", size, MinSize, MaxSize)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(s)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(boardPx), float64(boardPx))

	src := image.NewRGBA(image.Rect(0, 0, boardPx, boardPx))
	xdraw.Draw(src, src.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	scanner := rasterx.NewScannerGV(boardPx, boardPx, src, src.Bounds())
	raster := rasterx.NewDasher(boardPx, boardPx, scanner)
	icon.Draw(raster, 1.0)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var out image.Image = src
	if size != boardPx {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
