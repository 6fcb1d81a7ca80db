package pattern

import (
	"math"
	"reflect"
	"testing"
)

func TestNotesRunLength(t *testing.T) {
	p := New(2, 8)
	// row 0: x x . x . . . .
	p.Grid[0][0] = true
	p.Grid[0][1] = true
	p.Grid[0][3] = true

	want := []Note{
		{Row: 0, Start: 0, Length: 2},
		{Row: 0, Start: 3, Length: 1},
	}
	if got := p.Notes(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNotesRunToPatternEnd(t *testing.T) {
	p := New(1, 4)
	for i := range p.Grid[0] {
		p.Grid[0][i] = true
	}
	want := []Note{{Row: 0, Start: 0, Length: 4}}
	if got := p.Notes(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNotesMultipleRows(t *testing.T) {
	p := New(3, 4)
	p.Grid[0][0] = true
	p.Grid[2][2] = true
	p.Grid[2][3] = true

	want := []Note{
		{Row: 0, Start: 0, Length: 1},
		{Row: 2, Start: 2, Length: 2},
	}
	if got := p.Notes(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTriggersAt(t *testing.T) {
	p := New(2, 8)
	p.Grid[0][2] = true
	p.Grid[0][3] = true
	p.Grid[1][3] = true

	stepDur := p.StepDuration()

	// step 2 starts a two-step run on row 0
	got := p.TriggersAt(2)
	want := []Trigger{{Freq: rowFreqs[0], Duration: 2 * stepDur}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("step 2: got %v, want %v", got, want)
	}

	// step 3 continues row 0's run, so only row 1 fires
	got = p.TriggersAt(3)
	want = []Trigger{{Freq: rowFreqs[1], Duration: stepDur}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("step 3: got %v, want %v", got, want)
	}

	if got := p.TriggersAt(5); got != nil {
		t.Errorf("step 5: got %v, want none", got)
	}
}

func TestTriggersAtMelody(t *testing.T) {
	p := New(2, 8)
	p.Melody = Curve{{Step: 0, Row: 0}, {Step: 7, Row: 0}}

	got := p.TriggersAt(4)
	if len(got) != 1 {
		t.Fatalf("got %d triggers, want 1", len(got))
	}
	if got[0].Freq != rowFreqs[0] {
		t.Errorf("freq %v, want %v", got[0].Freq, rowFreqs[0])
	}
	if want := p.StepDuration() * melodyNoteLen; got[0].Duration != want {
		t.Errorf("duration %v, want %v", got[0].Duration, want)
	}
}

func TestEmpty(t *testing.T) {
	p := New(4, 8)
	if !p.Empty() {
		t.Error("fresh pattern not empty")
	}
	p.Toggle(1, 1)
	if p.Empty() {
		t.Error("pattern with a cell reported empty")
	}
	p.Clear()
	if !p.Empty() {
		t.Error("cleared pattern not empty")
	}
	p.Melody = Curve{{Step: 0, Row: 1}, {Step: 4, Row: 2}}
	if p.Empty() {
		t.Error("pattern with a melody curve reported empty")
	}
	p.Melody = Curve{{Step: 0, Row: 1}}
	if !p.Empty() {
		t.Error("single-point curve should not make the pattern playable")
	}
}

func TestCloneIndependence(t *testing.T) {
	p := New(2, 4)
	p.Toggle(0, 0)
	p.Melody = Curve{{Step: 0, Row: 1}, {Step: 3, Row: 2}}

	c := p.Clone()
	c.Toggle(0, 0)
	c.Toggle(1, 2)
	c.Melody[0].Row = 9

	if !p.At(0, 0) || p.At(1, 2) {
		t.Error("mutating the clone changed the original grid")
	}
	if p.Melody[0].Row != 1 {
		t.Error("mutating the clone changed the original melody")
	}
}

func TestAtOutOfBounds(t *testing.T) {
	p := New(2, 4)
	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 4}} {
		if p.At(pos[0], pos[1]) {
			t.Errorf("At(%d, %d) out of bounds reported true", pos[0], pos[1])
		}
	}
}

func TestStepDuration(t *testing.T) {
	p := New(1, 1)
	p.Tempo = 120
	if got := p.StepDuration(); got != 0.125 {
		t.Errorf("120 bpm: got %v, want 0.125", got)
	}
	p.Tempo = 240
	if got := p.StepDuration(); got != 0.0625 {
		t.Errorf("240 bpm: got %v, want 0.0625", got)
	}
}

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		ok   bool
	}{
		{"c4", 261.63, true},
		{"C4", 261.63, true},
		{"a6", 1760.00, true},
		{"e5", 659.25, true},
		{"b4", 0, false}, // not on the pentatonic keyboard
		{"", 0, false},
	}
	for _, tt := range tests {
		freq, ok := NoteFrequency(tt.name)
		if freq != tt.freq || ok != tt.ok {
			t.Errorf("NoteFrequency(%q) = %v, %v; want %v, %v", tt.name, freq, ok, tt.freq, tt.ok)
		}
	}
}

func TestInterpolateFrequency(t *testing.T) {
	if got := InterpolateFrequency(0); got != rowFreqs[0] {
		t.Errorf("row 0: got %v, want %v", got, rowFreqs[0])
	}
	last := len(rowFreqs) - 1
	if got := InterpolateFrequency(float64(last)); got != rowFreqs[last] {
		t.Errorf("last row: got %v, want %v", got, rowFreqs[last])
	}
	// clamped outside the keyboard
	if got := InterpolateFrequency(-3); got != rowFreqs[0] {
		t.Errorf("below range: got %v, want %v", got, rowFreqs[0])
	}
	if got := InterpolateFrequency(99); got != rowFreqs[last] {
		t.Errorf("above range: got %v, want %v", got, rowFreqs[last])
	}
	// halfway between two rows
	want := (rowFreqs[2] + rowFreqs[3]) / 2
	if got := InterpolateFrequency(2.5); math.Abs(got-want) > 1e-9 {
		t.Errorf("row 2.5: got %v, want %v", got, want)
	}
}
