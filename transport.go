package main

import (
	"sync"
	"time"

	"kokesynth/audio"
	"kokesynth/pattern"
)

// transport advances the playhead at the tempo-derived step interval and
// feeds the derived note-on commands to the engine. It does no audio-rate
// work itself, and stopping it only stops future triggers: voices already
// in the pool play to completion.
type transport struct {
	engine   *audio.Engine
	snapshot func() pattern.Pattern

	mu   sync.Mutex
	step int
	quit chan struct{}
}

func newTransport(engine *audio.Engine, snapshot func() pattern.Pattern) *transport {
	return &transport{engine: engine, snapshot: snapshot}
}

func (t *transport) playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quit != nil
}

// play starts stepping from the current playhead position. No-op while
// already playing.
func (t *transport) play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.quit != nil {
		return
	}
	t.quit = make(chan struct{})
	go t.run(t.quit)
}

// pause halts stepping but keeps the playhead position.
func (t *transport) pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.quit == nil {
		return
	}
	close(t.quit)
	t.quit = nil
}

// stop halts stepping and rewinds the playhead.
func (t *transport) stop() {
	t.pause()
	t.mu.Lock()
	t.step = 0
	t.mu.Unlock()
}

func (t *transport) currentStep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.step
}

// run triggers the current step's notes, sleeps one step interval and
// only then advances the playhead, so the position reported while
// sleeping is the step that is sounding. The pattern is re-read every
// iteration so tempo changes and grid edits take effect mid-playback;
// pausing mid-step resumes at that same step.
func (t *transport) run(quit chan struct{}) {
	for {
		pat := t.snapshot()

		t.mu.Lock()
		if t.step >= pat.Steps {
			t.step = 0
		}
		step := t.step
		t.mu.Unlock()

		for _, trig := range pat.TriggersAt(step) {
			t.engine.Trigger(trig.Freq, trig.Duration)
		}

		interval := time.Duration(pat.StepDuration() * float64(time.Second))
		select {
		case <-quit:
			return
		case <-time.After(interval):
		}

		t.mu.Lock()
		t.step = (step + 1) % pat.Steps
		t.mu.Unlock()
	}
}
