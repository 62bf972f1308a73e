package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Popup floats a Pane over an existing rendering.
type Popup struct {
	Pane
	// Width and Height size the card. Zero, or anything larger than the
	// box, means the whole box.
	Width, Height int
}

// Size is the card size Over will use inside a width x height box.
func (p Popup) Size(width, height int) (int, int) {
	fit := func(want, box int) int {
		if want <= 0 || want > box {
			return box
		}
		return want
	}
	return fit(p.Width, width), fit(p.Height, height)
}

// Over centres the card on base. Cells of base outside the card stay
// visible.
func (p Popup) Over(base string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := strings.Split(base, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRight(rows[i], width)
	}

	cw, ch := p.Size(width, height)
	card := strings.Split(p.Pane.Render(cw, ch), "\n")
	left, top := (width-cw)/2, (height-ch)/2
	for i, line := range card {
		r := top + i
		if r >= height {
			break
		}
		rows[r] = ansi.Truncate(rows[r], left, "") +
			padRight(line, cw) +
			ansi.TruncateLeft(rows[r], left+cw, "")
	}
	return strings.Join(rows, "\n")
}
