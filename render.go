package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"kokesynth/pattern"
)

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}

// renderState prints the pattern grid with note-name labels, the melody
// curve overlaid on empty cells, and the playhead column highlighted
// while playing.
func renderState(w io.Writer, pat pattern.Pattern, step int, playing bool) {
	for row := 0; row < pat.Rows; row++ {
		fmt.Fprintf(w, "%s ", colorize(fmt.Sprintf("%2s", pattern.RowName(row)), colorBlue))
		for col := 0; col < pat.Steps; col++ {
			cell := "· "
			switch {
			case pat.At(row, col):
				color := colorRed
				if playing && col == step {
					color = colorYellow
				}
				cell = colorize("■ ", color)
			case melodyRow(pat, col) == row:
				cell = colorize("~ ", colorMagenta)
			case playing && col == step:
				cell = colorize("· ", colorYellow)
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}

	var numbers strings.Builder
	for col := 1; col <= pat.Steps; col++ {
		fmt.Fprintf(&numbers, "%-2d", col)
	}
	fmt.Fprintf(w, "   %s\n", colorize(numbers.String(), colorGreen))
}

func melodyRow(pat pattern.Pattern, col int) int {
	row, ok := pat.Melody.RowAt(float64(col))
	if !ok {
		return -1
	}
	return int(math.Round(row))
}
