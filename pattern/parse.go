package pattern

import (
	"fmt"
	"strings"
)

// ParseRow parses a textual step row like "x..x x..x x..x x..x" into cell
// states. 'x' or 'X' marks an active step, '.' or '-' an inactive one;
// spaces are ignored so steps can be grouped per beat.
func ParseRow(input string, steps int) ([]bool, error) {
	cells := make([]bool, 0, steps)
	for _, r := range input {
		switch r {
		case 'x', 'X':
			cells = append(cells, true)
		case '.', '-':
			cells = append(cells, false)
		case ' ', '\t':
			continue
		default:
			return nil, fmt.Errorf("invalid step character %q in %q", r, input)
		}
	}
	if len(cells) != steps {
		return nil, fmt.Errorf("row has %d steps, want %d: %q", len(cells), steps, strings.TrimSpace(input))
	}
	return cells, nil
}
