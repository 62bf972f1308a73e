package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const glyphHeight = 5

var glyphs = map[rune][glyphHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "▪", " ", "▪", " "},
	'.': {" ", " ", " ", " ", "▪"},
	'-': {"   ", "   ", "───", "   ", "   "},
	' ': {" ", " ", " ", " ", " "},
}

// BigText renders digits, colons and dots as block glyphs separated by one
// column. Runes without a glyph are skipped.
func BigText(s string) string {
	rows := make([]string, glyphHeight)
	first := true
	for _, r := range s {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i] += " "
			}
			rows[i] += g[i]
		}
		first = false
	}
	return strings.Join(rows, "\n")
}

// Digits renders Value large when the box allows it, otherwise as plain
// text.
type Digits struct {
	Value string
	Style lipgloss.Style
}

func (d Digits) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	big := BigText(d.Value)
	if height >= glyphHeight && lipgloss.Width(big) <= width {
		return d.Style.Render(big)
	}
	return d.Style.Render(ansi.Truncate(d.Value, width, ""))
}
