package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a grid of glyphs with a colour per cell.
type canvas struct {
	width  int
	height int
	cells  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{
		width:  width,
		height: height,
		cells:  make([][]rune, height),
		colors: make([][]lipgloss.Color, height),
	}
	for y := 0; y < height; y++ {
		c.cells[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			c.cells[y][x] = ' '
			c.colors[y][x] = "236"
		}
	}
	return c
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *canvas) set(x, y int, r rune, color lipgloss.Color) {
	if c.inBounds(x, y) {
		c.cells[y][x] = r
		c.colors[y][x] = color
	}
}

func (c *canvas) get(x, y int) rune {
	if !c.inBounds(x, y) {
		return 0
	}
	return c.cells[y][x]
}

// text writes s starting at (x, y), clipping at the edges.
func (c *canvas) text(x, y int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, color)
	}
}

// String renders the canvas, merging runs of one colour into a single
// styled span.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.colors[y][x] == c.colors[y][start] {
				continue
			}
			run := string(c.cells[y][start:x])
			b.WriteString(lipgloss.NewStyle().Foreground(c.colors[y][start]).Render(run))
			start = x
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
