package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kokesynth/audio"
	"kokesynth/gen"
	"kokesynth/pattern"
)

func exec(s *session, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	name, args := parts[0], parts[1:]
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if len(args) < cmd.minArgs {
			return fmt.Errorf("usage: %s", cmd.usage)
		}
		if err := cmd.run(s, args); err != nil {
			return fmt.Errorf("%s: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s (try help)", name)
}

type command struct {
	name    string
	usage   string
	help    string
	run     func(s *session, args []string) error
	minArgs int
}

var commands = []command{
	{"note", "note <name|hz> [seconds]", "play a note, e.g. note c5 0.3", noteCommand, 1},
	{"wave", "wave <kind>", "set waveform: square sawtooth triangle pulse noise sine", waveCommand, 1},
	{"attack", "attack <ms>", "set envelope attack time", attackCommand, 1},
	{"decay", "decay <ms>", "set envelope decay time", decayCommand, 1},
	{"preset", "preset <name>", "load a sound preset", presetCommand, 1},
	{"bpm", "bpm <60-240>", "set the tempo", bpmCommand, 1},
	{"row", "row <note> <steps>", "set one grid row, e.g. row c4 x... x... x... x...", rowCommand, 2},
	{"toggle", "toggle <note> <step>", "flip one grid cell", toggleCommand, 2},
	{"clear", "clear", "clear the grid and the melody curve", clearCommand, 0},
	{"gen", "gen [technique]", "generate a pattern: chords bassmelody arpeggio rhythmic videogame algorithmic", genCommand, 0},
	{"melody", "melody <style|off> [points] [low|mid|high|full]", "generate a melody curve: linear cubic step wave walk arpup arpdown", melodyCommand, 1},
	{"play", "play", "start or resume playback", playCommand, 0},
	{"pause", "pause", "pause playback, keeping the playhead", pauseCommand, 0},
	{"stop", "stop", "stop playback and rewind", stopCommand, 0},
	{"show", "show", "print the pattern grid", showCommand, 0},
	{"export", "export <file.wav> [loops]", "bounce the pattern to a 16-bit WAV file", exportCommand, 1},
}

func init() {
	// registered here so the table can reference itself
	commands = append(commands, command{
		"help", "help", "print this overview", helpCommand, 0,
	})
}

func helpCommand(s *session, args []string) error {
	for _, cmd := range commands {
		fmt.Printf("%-50s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func noteCommand(s *session, args []string) error {
	freq, ok := pattern.NoteFrequency(args[0])
	if !ok {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("not a note name or frequency: %s", args[0])
		}
		freq = f
	}
	duration := 0.3
	if len(args) > 1 {
		d, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("bad duration: %s", args[1])
		}
		duration = d
	}
	if freq <= 0 || duration <= 0 {
		return errors.New("frequency and duration must be positive")
	}
	s.engine.Trigger(freq, duration)
	return nil
}

func waveCommand(s *session, args []string) error {
	return s.engine.Set(audio.PropWave, args[0])
}

func attackCommand(s *session, args []string) error {
	return setMillis(s, audio.PropAttack, args[0])
}

func decayCommand(s *session, args []string) error {
	return setMillis(s, audio.PropDecay, args[0])
}

func setMillis(s *session, prop, arg string) error {
	ms, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("bad duration: %s", arg)
	}
	return s.engine.Set(prop, ms/1000)
}

func presetCommand(s *session, args []string) error {
	if err := audio.LoadPreset(args[0], s.engine); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(audio.PresetNames(), " "))
	}
	return nil
}

func bpmCommand(s *session, args []string) error {
	bpm, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad tempo: %s", args[0])
	}
	if bpm < pattern.MinTempo || bpm > pattern.MaxTempo {
		return fmt.Errorf("tempo out of range %d-%d: %v", pattern.MinTempo, pattern.MaxTempo, bpm)
	}
	s.update(func(p *pattern.Pattern) { p.Tempo = bpm })
	return nil
}

func rowCommand(s *session, args []string) error {
	pat := s.snapshot()
	row, err := parseRowArg(pat, args[0])
	if err != nil {
		return err
	}
	cells, err := pattern.ParseRow(strings.Join(args[1:], " "), pat.Steps)
	if err != nil {
		return err
	}
	s.update(func(p *pattern.Pattern) { copy(p.Grid[row], cells) })
	return nil
}

func toggleCommand(s *session, args []string) error {
	pat := s.snapshot()
	row, err := parseRowArg(pat, args[0])
	if err != nil {
		return err
	}
	step, err := strconv.Atoi(args[1])
	if err != nil || step < 1 || step > pat.Steps {
		return fmt.Errorf("not a step number 1-%d: %s", pat.Steps, args[1])
	}
	s.update(func(p *pattern.Pattern) { p.Toggle(row, step-1) })
	return nil
}

// parseRowArg resolves a grid row from a note name like "c4" or a
// 1-based row number counted from the top.
func parseRowArg(pat pattern.Pattern, arg string) (int, error) {
	for row := 0; row < pat.Rows; row++ {
		if strings.EqualFold(pattern.RowName(row), arg) {
			return row, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= pat.Rows {
		return n - 1, nil
	}
	return 0, fmt.Errorf("not a row: %s (use a note name like c5)", arg)
}

func clearCommand(s *session, args []string) error {
	s.transport.stop()
	s.update(func(p *pattern.Pattern) { p.Clear() })
	return nil
}

func genCommand(s *session, args []string) error {
	var technique gen.Technique
	if len(args) > 0 {
		technique = gen.Technique(args[0])
		if !validTechnique(technique) {
			return fmt.Errorf("unknown technique: %s", args[0])
		}
	}
	s.transport.stop()
	grid, settings, name := gen.Pattern(s.rng, pattern.DefaultRows, pattern.DefaultSteps, technique)
	s.update(func(p *pattern.Pattern) {
		p.Grid = grid
		p.Tempo = float64(settings.Tempo)
	})
	if err := s.engine.Set(audio.PropAttack, float64(settings.Attack)/1000); err != nil {
		return err
	}
	if err := s.engine.Set(audio.PropDecay, float64(settings.Decay)/1000); err != nil {
		return err
	}
	fmt.Printf("generated: %s at %d bpm\n", name, settings.Tempo)
	return nil
}

func validTechnique(t gen.Technique) bool {
	for _, known := range gen.Techniques {
		if t == known {
			return true
		}
	}
	return false
}

// melodyRanges map range names to row spans; row 0 is the highest lane.
var melodyRanges = map[string][2]float64{
	"low":  {10, 14},
	"mid":  {5, 10},
	"high": {0, 5},
	"full": {0, 14},
}

func melodyCommand(s *session, args []string) error {
	if args[0] == "off" {
		s.update(func(p *pattern.Pattern) { p.Melody = nil })
		return nil
	}
	style := gen.MelodyStyle(args[0])
	if !validMelodyStyle(style) {
		return fmt.Errorf("unknown melody style: %s", args[0])
	}
	count := 8
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 2 || n > 16 {
			return fmt.Errorf("point count must be 2-16: %s", args[1])
		}
		count = n
	}
	span := melodyRanges["mid"]
	if len(args) > 2 {
		r, ok := melodyRanges[args[2]]
		if !ok {
			return fmt.Errorf("unknown range: %s (low mid high full)", args[2])
		}
		span = r
	}
	pat := s.snapshot()
	curve := gen.Melody(s.rng, style, count, pat.Steps, span[0], span[1])
	s.update(func(p *pattern.Pattern) { p.Melody = curve })
	fmt.Printf("melody: %s, %d points\n", style, len(curve))
	return nil
}

func validMelodyStyle(style gen.MelodyStyle) bool {
	for _, known := range gen.MelodyStyles {
		if style == known {
			return true
		}
	}
	return false
}

func playCommand(s *session, args []string) error {
	if s.snapshot().Empty() {
		return errors.New("nothing to play: draw a pattern first")
	}
	s.transport.play()
	return nil
}

func pauseCommand(s *session, args []string) error {
	s.transport.pause()
	return nil
}

func stopCommand(s *session, args []string) error {
	s.transport.stop()
	return nil
}

func showCommand(s *session, args []string) error {
	renderState(os.Stdout, s.snapshot(), s.transport.currentStep(), s.transport.playing())
	return nil
}

func exportCommand(s *session, args []string) error {
	path := args[0]
	loops := 2
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad loop count: %s", args[1])
		}
		loops = n
	}
	if loops < 1 || loops > 10 {
		return errors.New("loop count must be 1-10")
	}
	pat := s.snapshot()
	if pat.Empty() {
		return errors.New("nothing to render: draw a pattern first")
	}

	// Pause playback for the duration of the bounce; resume it no
	// matter how the export went.
	if s.transport.playing() {
		s.transport.pause()
		defer s.transport.play()
	}

	cfg := s.engine.RenderConfig()
	cfg.Loops = loops
	buf, err := audio.RenderPattern(pat, cfg)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := audio.WriteWAV(f, audio.Quantize(buf), cfg.SampleRate); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	fmt.Printf("exported %s: %d loops, %.1fs\n", path, loops, float64(len(buf))/float64(cfg.SampleRate))
	return nil
}
