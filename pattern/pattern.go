// Package pattern holds the sequencer's pattern model: a boolean grid of
// pitch lanes by time steps plus a melody curve, and the pure derivations
// that the playback and export paths consume.
package pattern

import "strings"

const (
	DefaultRows  = 15
	DefaultSteps = 16

	MinTempo = 60
	MaxTempo = 240
)

// rowFreqs maps grid rows top to bottom (A6 down to C4) onto the
// instrument's pentatonic keyboard.
var rowFreqs = []float64{
	1760.00, // A6
	1567.98, // G6
	1318.51, // E6
	1174.66, // D6
	1046.50, // C6
	880.00,  // A5
	783.99,  // G5
	659.25,  // E5
	587.33,  // D5
	523.25,  // C5
	440.00,  // A4
	392.00,  // G4
	329.63,  // E4
	293.66,  // D4
	261.63,  // C4
}

var rowNames = []string{
	"A6", "G6", "E6", "D6", "C6",
	"A5", "G5", "E5", "D5", "C5",
	"A4", "G4", "E4", "D4", "C4",
}

func RowFrequency(row int) float64 { return rowFreqs[row] }

func RowName(row int) string { return rowNames[row] }

// NoteFrequency looks up a keyboard note by name, e.g. "c5".
func NoteFrequency(name string) (float64, bool) {
	name = strings.ToUpper(name)
	for i, n := range rowNames {
		if n == name {
			return rowFreqs[i], true
		}
	}
	return 0, false
}

// InterpolateFrequency converts a fractional row position into a
// frequency by interpolating linearly between the two bracketing rows.
func InterpolateFrequency(row float64) float64 {
	if row <= 0 {
		return rowFreqs[0]
	}
	last := len(rowFreqs) - 1
	if row >= float64(last) {
		return rowFreqs[last]
	}
	lo := int(row)
	hi := lo + 1
	t := row - float64(lo)
	return rowFreqs[lo] + (rowFreqs[hi]-rowFreqs[lo])*t
}

// Pattern is a rows×steps grid of note cells, a melody curve and a tempo.
// The playback session mutates it under its own lock; the offline
// renderer and the transport work on a Clone.
type Pattern struct {
	Rows   int
	Steps  int
	Grid   [][]bool
	Melody Curve
	Tempo  float64
}

func New(rows, steps int) Pattern {
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, steps)
	}
	return Pattern{Rows: rows, Steps: steps, Grid: grid, Tempo: 120}
}

// Clone returns a deep copy the caller can read without holding the
// session lock.
func (p Pattern) Clone() Pattern {
	c := p
	c.Grid = make([][]bool, len(p.Grid))
	for i, row := range p.Grid {
		c.Grid[i] = append([]bool(nil), row...)
	}
	c.Melody = append(Curve(nil), p.Melody...)
	return c
}

func (p Pattern) At(row, step int) bool {
	return row >= 0 && row < p.Rows && step >= 0 && step < p.Steps && p.Grid[row][step]
}

func (p *Pattern) Toggle(row, step int) {
	p.Grid[row][step] = !p.Grid[row][step]
}

func (p *Pattern) Clear() {
	for _, row := range p.Grid {
		for i := range row {
			row[i] = false
		}
	}
	p.Melody = nil
}

// Empty reports whether there is nothing to play: no active cell and no
// usable melody curve.
func (p Pattern) Empty() bool {
	for _, row := range p.Grid {
		for _, cell := range row {
			if cell {
				return false
			}
		}
	}
	return len(p.Melody) < 2
}

// StepDuration is the length of one grid step in seconds; a step is a
// sixteenth note at the pattern's tempo.
func (p Pattern) StepDuration() float64 {
	return 60.0 / p.Tempo / 4
}

// Note is a run of contiguous active cells in one pitch lane.
type Note struct {
	Row    int
	Start  int
	Length int
}

// Notes run-length encodes the grid: a note starts at any active cell
// whose predecessor is inactive or absent, and extends over the
// contiguous active cells that follow. One note per run, not per cell.
func (p Pattern) Notes() []Note {
	var notes []Note
	for row := 0; row < p.Rows; row++ {
		for step := 0; step < p.Steps; step++ {
			if !p.At(row, step) || p.At(row, step-1) {
				continue
			}
			length := 1
			for p.At(row, step+length) {
				length++
			}
			notes = append(notes, Note{Row: row, Start: step, Length: length})
		}
	}
	return notes
}

// Trigger is one note-on command for the synth engine.
type Trigger struct {
	Freq     float64
	Duration float64 // seconds
}

// melodyNoteLen is the fraction of a step a melody-curve note sustains;
// short of a full step so consecutive notes stay articulated.
const melodyNoteLen = 0.8

// TriggersAt derives the note-on commands for one playhead position:
// grid notes starting at this step (with their run-length duration) plus
// the interpolated melody-curve note, if the curve covers the step.
// It is a pure function of the pattern; the transport calls it at the
// tempo-derived interval.
func (p Pattern) TriggersAt(step int) []Trigger {
	var trigs []Trigger
	stepDur := p.StepDuration()
	for row := 0; row < p.Rows; row++ {
		if !p.At(row, step) || p.At(row, step-1) {
			continue
		}
		length := 1
		for p.At(row, step+length) {
			length++
		}
		trigs = append(trigs, Trigger{
			Freq:     rowFreqs[row],
			Duration: stepDur * float64(length),
		})
	}
	if row, ok := p.Melody.RowAt(float64(step)); ok {
		trigs = append(trigs, Trigger{
			Freq:     InterpolateFrequency(row),
			Duration: stepDur * melodyNoteLen,
		})
	}
	return trigs
}
