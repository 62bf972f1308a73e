package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom. Ratios weight each row's share of
// the height; rows share equally when Ratios does not match Widgets.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacing := max(0, v.Spacing)
	heights := share(max(1, height-spacing*(n-1)), n, v.Ratios)
	blocks := make([]string, n)
	for i, w := range v.Widgets {
		blocks[i] = w.Render(width, max(1, heights[i]))
	}
	return strings.Join(blocks, strings.Repeat("\n", spacing+1))
}

// HStack lays widgets side by side, Gap columns apart.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gap := max(0, h.Gap)
	widths := share(max(1, width-gap*(n-1)), n, h.Ratios)
	cols := make([][]string, n)
	rows := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rows = max(rows, len(cols[i]))
	}
	sep := strings.Repeat(" ", gap)
	out := make([]string, rows)
	cells := make([]string, n)
	for r := range out {
		for i, col := range cols {
			line := ""
			if r < len(col) {
				line = col[r]
			}
			cells[i] = padRight(line, widths[i])
		}
		out[r] = strings.Join(cells, sep)
	}
	return strings.Join(out, "\n")
}

// share divides total cells between n slots by weight. Leftover cells go
// to the earliest slots.
func share(total, n int, weights []float64) []int {
	if n <= 0 {
		return nil
	}
	if len(weights) != n {
		weights = make([]float64, n)
	}
	weight := func(w float64) float64 {
		if w <= 0 {
			return 1
		}
		return w
	}
	sum := 0.0
	for _, w := range weights {
		sum += weight(w)
	}
	out := make([]int, n)
	left := total
	for i, w := range weights {
		out[i] = int(float64(total) * weight(w) / sum)
		left -= out[i]
	}
	for i := 0; left > 0; i = (i + 1) % n {
		out[i]++
		left--
	}
	return out
}

// padRight clips or pads s to exactly width cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
