package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ring draws a circle of dots whose first Progress fraction, clockwise from
// twelve o'clock, is filled. Label is printed in the middle.
type Ring struct {
	Progress float64
	Label    string
	Filled   lipgloss.Style
	Empty    lipgloss.Style
}

func (r Ring) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	p := math.Max(0, math.Min(1, r.Progress))

	// Cells are about twice as tall as wide.
	radius := math.Min(float64(width-1)/4, float64(height-1)/2)
	if radius < 2 {
		return r.Label
	}
	rows := int(radius*2) + 1
	cols := int(radius*4) + 1
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	cy, cx := float64(rows-1)/2, float64(cols-1)/2
	steps := int(2 * math.Pi * radius * 2)
	for i := 0; i < steps; i++ {
		frac := float64(i) / float64(steps)
		theta := frac * 2 * math.Pi
		y := int(math.Round(cy - radius*math.Cos(theta)))
		x := int(math.Round(cx + 2*radius*math.Sin(theta)))
		if y < 0 || y >= rows || x < 0 || x >= cols {
			continue
		}
		if frac < p {
			grid[y][x] = r.Filled.Render("●")
		} else if grid[y][x] == " " {
			grid[y][x] = r.Empty.Render("·")
		}
	}

	if r.Label != "" {
		mid := rows / 2
		label := []rune(r.Label)
		start := max(0, (cols-len(label))/2)
		for i, ch := range label {
			if x := start + i; x < cols {
				grid[mid][x] = string(ch)
			}
		}
	}

	lines := make([]string, rows)
	for y := range grid {
		lines[y] = strings.Join(grid[y], "")
	}
	return strings.Join(lines, "\n")
}
