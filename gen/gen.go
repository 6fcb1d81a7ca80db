// Package gen generates sequencer patterns from simple music-theory
// rules. It only emits a boolean grid plus suggested settings; applying
// them to the session is the caller's job.
package gen

import "math/rand"

// Technique selects a composition rule set.
type Technique string

const (
	ChordProgression Technique = "chords"
	BassAndMelody    Technique = "bassmelody"
	Arpeggio         Technique = "arpeggio"
	Rhythmic         Technique = "rhythmic"
	VideoGameTheme   Technique = "videogame"
	Algorithmic      Technique = "algorithmic"
)

// Techniques lists the rule sets available for random selection and for
// the help output.
var Techniques = []Technique{
	ChordProgression,
	BassAndMelody,
	Arpeggio,
	Rhythmic,
	VideoGameTheme,
	Algorithmic,
}

// Settings are the engine settings a generated pattern wants applied
// alongside it.
type Settings struct {
	Tempo  int
	Attack int // milliseconds
	Decay  int // milliseconds
}

// noteRow maps note names onto grid rows (row 0 is A6 at the top, row 14
// is C4 at the bottom), pentatonic for an easy retro sound.
var noteRow = map[string]int{
	"C4": 14, "D4": 13, "E4": 12, "G4": 11, "A4": 10,
	"C5": 9, "D5": 8, "E5": 7, "G5": 6, "A5": 5,
	"C6": 4, "D6": 3, "E6": 2, "G6": 1, "A6": 0,
}

// chordProgressions in scale degrees.
var chordProgressions = [][]int{
	{0, 3, 4, 0}, // I-IV-V-I
	{0, 5, 3, 4}, // I-vi-IV-V
	{5, 3, 0, 4}, // vi-IV-I-V
	{0, 4, 5, 3}, // I-V-vi-IV
}

// rhythmPatterns are the steps to fill within a 4-step beat.
var rhythmPatterns = [][]int{
	{0, 2},
	{0, 1, 2, 3},
	{0, 3},
	{0, 2, 3},
}

type grid [][]bool

func newGrid(rows, steps int) grid {
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]bool, steps)
	}
	return g
}

func (g grid) set(row, step int) {
	if row >= 0 && row < len(g) && step >= 0 && step < len(g[row]) {
		g[row][step] = true
	}
}

// Pattern generates a rows×steps grid using the given technique, or a
// random one when technique is empty. It returns the grid, the settings
// to apply with it, and a display name for the rule set used.
func Pattern(rng *rand.Rand, rows, steps int, technique Technique) ([][]bool, Settings, string) {
	if technique == "" {
		technique = Techniques[rng.Intn(len(Techniques))]
	}
	g := newGrid(rows, steps)
	var settings Settings
	var name string
	switch technique {
	case ChordProgression:
		settings = chordProgression(rng, g, steps)
		name = "I-IV-V chord progression"
	case BassAndMelody:
		settings = bassAndMelody(rng, g, steps)
		name = "bass + melody"
	case Arpeggio:
		settings = arpeggio(rng, g, steps)
		name = "arpeggio"
	case Rhythmic:
		settings = rhythmic(rng, g, steps)
		name = "rhythmic beat"
	case Algorithmic:
		settings = algorithmic(rng, g, steps)
		name = "algorithmic"
	default:
		settings = videoGameTheme(rng, g, steps)
		name = "video game theme"
	}
	return g, settings, name
}

func chordProgression(rng *rand.Rand, g grid, steps int) Settings {
	progression := chordProgressions[rng.Intn(len(chordProgressions))]
	rhythm := rhythmPatterns[rng.Intn(len(rhythmPatterns))]

	// Simple triad voicings keyed by scale degree.
	chords := map[int][]int{
		0: {noteRow["C4"], noteRow["E4"], noteRow["G4"]},
		3: {noteRow["D4"], noteRow["G4"], noteRow["A4"]},
		4: {noteRow["E4"], noteRow["G4"], noteRow["C5"]},
		5: {noteRow["A4"], noteRow["C5"], noteRow["E5"]},
	}

	for beat := 0; beat < 4; beat++ {
		notes, ok := chords[progression[beat]]
		if !ok {
			continue
		}
		for _, pos := range rhythm {
			step := beat*4 + pos
			if step >= steps {
				continue
			}
			for _, row := range notes {
				g.set(row, step)
			}
		}
	}
	return Settings{Tempo: 110 + rng.Intn(31), Attack: 10, Decay: 250}
}

func bassAndMelody(rng *rand.Rand, g grid, steps int) Settings {
	bassNotes := []int{noteRow["C4"], noteRow["G4"], noteRow["A4"], noteRow["C4"]}
	for beat := 0; beat < 4; beat++ {
		for _, pos := range []int{0, 2} {
			g.set(bassNotes[beat%len(bassNotes)], beat*4+pos)
		}
	}

	melodyNotes := []int{noteRow["C5"], noteRow["E5"], noteRow["G5"], noteRow["E5"]}
	for i := 0; i < 4; i++ {
		step := i * 4
		row := melodyNotes[i%len(melodyNotes)]
		g.set(row, step)
		if i%2 == 1 {
			g.set(row, step+1)
		}
	}
	return Settings{Tempo: 130 + rng.Intn(31), Attack: 15, Decay: 180}
}

func arpeggio(rng *rand.Rand, g grid, steps int) Settings {
	arpNotes := []int{
		noteRow["C4"], noteRow["E4"], noteRow["G4"],
		noteRow["C5"], noteRow["E5"], noteRow["G5"],
	}
	for i := 0; i < steps; i++ {
		g.set(arpNotes[i%len(arpNotes)], i)
	}
	return Settings{Tempo: 140 + rng.Intn(41), Attack: 5, Decay: 120}
}

func rhythmic(rng *rand.Rand, g grid, steps int) Settings {
	for _, step := range []int{0, 4, 8, 12} { // kick
		g.set(noteRow["C4"], step)
	}
	for _, step := range []int{4, 12} { // snare
		g.set(noteRow["E5"], step)
	}
	for step := 0; step < steps; step += 2 { // hi-hat
		g.set(noteRow["A6"], step)
	}
	bassLine := []int{noteRow["C4"], noteRow["E4"], noteRow["G4"], noteRow["A4"]}
	for i, row := range bassLine {
		g.set(row, i*4+2)
	}
	return Settings{Tempo: 130 + rng.Intn(31), Attack: 1, Decay: 80}
}

func videoGameTheme(rng *rand.Rand, g grid, steps int) Settings {
	melody := []struct{ row, start, length int }{
		{noteRow["E5"], 0, 1},
		{noteRow["E5"], 2, 1},
		{noteRow["E5"], 4, 2},
		{noteRow["C5"], 6, 1},
		{noteRow["E5"], 7, 1},
		{noteRow["G5"], 8, 4},
		{noteRow["G4"], 12, 4},
	}
	for _, note := range melody {
		for i := 0; i < note.length && note.start+i < steps; i++ {
			g.set(note.row, note.start+i)
		}
	}
	g.set(noteRow["C4"], 0)
	g.set(noteRow["C4"], 8)
	g.set(noteRow["G4"], 4)
	g.set(noteRow["G4"], 12)
	return Settings{Tempo: 140 + rng.Intn(31), Attack: 8, Decay: 150}
}

func algorithmic(rng *rand.Rand, g grid, steps int) Settings {
	melodyPool := []string{"C5", "D5", "E5", "G5", "A5", "C6"}
	bassPool := []string{"C4", "D4", "E4", "G4", "A4"}
	harmonyPool := []string{"E4", "G4", "C5", "E5"}
	density := []float64{0.15, 0.25, 0.35}[rng.Intn(3)]

	// Bass foundation on the strong steps.
	for step := 0; step < steps; step += 4 {
		if rng.Float64() < 0.7 {
			g.set(noteRow[bassPool[rng.Intn(len(bassPool))]], step)
		}
	}
	// Melody on top.
	for step := 0; step < steps; step++ {
		if rng.Float64() < density {
			g.set(noteRow[melodyPool[rng.Intn(len(melodyPool))]], step)
		}
	}
	// Sparse middle harmonies on an offset rhythm.
	for step := 1; step < steps; step += 3 {
		if rng.Float64() < 0.3 {
			g.set(noteRow[harmonyPool[rng.Intn(len(harmonyPool))]], step)
		}
	}
	// A few accents anywhere.
	for i := 0; i < 4 && i < steps; i++ {
		step := rng.Intn(steps)
		row := rng.Intn(len(g))
		g.set(row, step)
	}

	// Busier patterns get faster envelopes and a calmer tempo.
	var count int
	for _, row := range g {
		for _, cell := range row {
			if cell {
				count++
			}
		}
	}
	switch {
	case count > 30:
		return Settings{Tempo: 100 + rng.Intn(31), Attack: 5 + rng.Intn(16), Decay: 30 + rng.Intn(31)}
	case count > 15:
		return Settings{Tempo: 120 + rng.Intn(31), Attack: 10 + rng.Intn(21), Decay: 50 + rng.Intn(51)}
	default:
		return Settings{Tempo: 80 + rng.Intn(31), Attack: 20 + rng.Intn(31), Decay: 100 + rng.Intn(101)}
	}
}
