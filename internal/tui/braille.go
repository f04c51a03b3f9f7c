package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a w x h cell canvas with a 2x4 dot micro grid per cell.
// Each cell takes the color of the last pen that touched it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	col  [][]string
	pen  string

	marked       bool
	markX, markY int
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col}
}

// dotBits maps a micro position within a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.col[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath strokes consecutive vertices.
func (b *brailleBuf) drawPath(pts [][2]int) {
	for i := 1; i < len(pts); i++ {
		b.drawLineMicro(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
}

// fillRing fills a ring with the even-odd rule, one micro row at a time.
// Only every other dot is set so the outline drawn on top stays readable.
func (b *brailleBuf) fillRing(ring [][2]int) {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := range ring {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], c[1]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(a[0])+t*float64(c[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				if (xMic+yMic)%2 == 0 {
					b.setPixel(xMic, yMic)
				}
			}
		}
	}
}

// markCell highlights one cell, replacing whatever was drawn there.
func (b *brailleBuf) markCell(cx, cy int) {
	b.marked, b.markX, b.markY = true, cx, cy
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		run, runCol := []rune{}, ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if b.marked && x == b.markX && y == b.markY {
				flush()
				runCol = ""
				sb.WriteString(hoverStyle.Render("◯"))
				continue
			}
			mask := b.m[y][x]
			r, c := ' ', ""
			if mask != 0 {
				r, c = rune(0x2800+int(mask)), b.col[y][x]
			}
			if c != runCol {
				flush()
				runCol = c
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
